package store

import "strings"

const osReleaseFile = "etc/os-release"

// CurrentOSRelease reports the platform release tag, preferring the
// configured override, then VERSION_ID from os-release on the rootfs.
func (l *Local) CurrentOSRelease() string {
	if l.osRelease != "" {
		return l.osRelease
	}
	if l.cfg.OSRelease != "" {
		l.osRelease = l.cfg.OSRelease
		return l.osRelease
	}
	l.osRelease = "unknown"
	data, err := l.rootfs.ReadFile(osReleaseFile)
	if err != nil {
		return l.osRelease
	}
	for _, line := range strings.Split(string(data), "\n") {
		if val, ok := strings.CutPrefix(line, "VERSION_ID="); ok {
			l.osRelease = strings.Trim(strings.TrimSpace(val), `"`)
			break
		}
	}
	return l.osRelease
}

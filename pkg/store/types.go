package store

// PackageRecord describes one installed package. Records are owned by
// the store; slices returned from listing calls are snapshots and must
// be re-fetched after any mutating call.
type PackageRecord struct {
	Name      string
	Version   string
	Origin    string
	OSRelease string
	Comment   string
	CPE       string
	Locked    bool
	Automatic bool
	Depends   []string
	Files     []FileRecord
}

func (p PackageRecord) String() string {
	return p.Name + "-" + p.Version
}

// FileRecord is a file laid down by a package, with the digest captured
// at unpack time.
type FileRecord struct {
	Path   string
	SHA256 string
}

// IndexEntry is a candidate package from the remote catalog. Multiple
// entries may share a name; (name, version) is unique.
type IndexEntry struct {
	Name      string
	Version   string
	Comment   string
	Origin    string
	OSRelease string
	Filename  string
	SHA256    string
	Depends   []string
}

func (e IndexEntry) String() string {
	return e.Name + "-" + e.Version
}

// Stats summarises the local and remote package databases.
type Stats struct {
	Installed int
	Available int
}

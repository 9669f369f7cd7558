package resolve

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mpkg-project/mpkg/pkg/status"
	"github.com/mpkg-project/mpkg/pkg/store"
)

// TerminalChooser resolves ambiguity by listing the candidates and
// reading an index from In, re-prompting until the answer is a number
// in range. It blocks until a valid selection arrives or In is
// exhausted.
type TerminalChooser struct {
	In  io.Reader
	Out io.Writer
}

func (t *TerminalChooser) Choose(candidates []store.IndexEntry) (int, error) {
	fmt.Fprintln(t.Out, "Multiple packages found. Please select one:")
	for i, e := range candidates {
		fmt.Fprintf(t.Out, "%d. %s-%s\n", i, e.Name, e.Version)
	}

	scanner := bufio.NewScanner(t.In)
	for scanner.Scan() {
		choice, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil || choice < 0 || choice >= len(candidates) {
			fmt.Fprintf(t.Out, "Please select an entry 0 - %d\n", len(candidates)-1)
			continue
		}
		return choice, nil
	}
	if err := scanner.Err(); err != nil {
		return 0, err
	}
	return 0, status.Errorf(status.ErrInvalidInput, "no selection made")
}

package profile

import (
	"fmt"
	"io"
	"strings"

	"mod-profile/internal/config"
)

// WriteStatus prints st in the two-line status format.
func WriteStatus(w io.Writer, st config.Status) error {
	saved := "None"
	if len(st.Saved) > 0 {
		saved = strings.Join(st.Saved, ", ")
	}
	_, err := fmt.Fprintf(w, "Current Profile: %s\nSaved Profiles: %s\n", st.Active, saved)
	return err
}

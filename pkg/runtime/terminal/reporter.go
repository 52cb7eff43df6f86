package terminal

import (
	"fmt"
	"io"
	"os"
	"text/template"
)

// ProfileReporter lists the credential profiles found in the profile file.
type ProfileReporter struct {
	writer io.Writer
}

func NewProfileReporter(writer io.Writer) *ProfileReporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &ProfileReporter{writer: writer}
}

type profileListing struct {
	Path     string
	Profiles []string
}

func (c *ProfileReporter) Handle(path string, profiles []string) error {
	tmpl := `Profiles in {{.Path}}:
{{range .Profiles}}- {{.}}
{{else}}(none)
{{end}}`
	t, err := template.New("profiles").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, profileListing{Path: path, Profiles: profiles})
}

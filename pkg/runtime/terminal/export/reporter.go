package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/spartan-home-services/eagleeye/pkg/models/domain"
)

type TableConfig struct {
	NameWidth  int
	ValueWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:  16,
		ValueWidth: 72,
	}
}

// Reporter prints a generation result as a bordered two column table.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) Handle(result domain.Result) error {
	funcMap := template.FuncMap{
		"formatRow": func(name string, value interface{}) string {
			return fmt.Sprintf("| %-*s | %-*v |",
				c.config.NameWidth, name,
				c.config.ValueWidth, value)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+",
				strings.Repeat("-", c.config.NameWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2))
		},
		"join": strings.Join,
	}

	tmpl := `
{{if .OK}}PDF report generated successfully{{else}}Failed to generate PDF report{{end}}

{{separator}}
{{formatRow "Run" .RunID}}
{{formatRow "Design" .DesignID}}
{{formatRow "State" .State}}
{{if .OK}}{{formatRow "File" .Location}}
{{if .Mirrors}}{{formatRow "Mirrors" (join .Mirrors ", ")}}
{{end}}{{formatRow "Pages" .Pages}}
{{formatRow "Images" .ImagesEmbedded}}
{{else}}{{formatRow "Failure" .Failure}}
{{formatRow "Reason" .Reason}}
{{end}}{{separator}}
`

	t, err := template.New("result").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, result)
}

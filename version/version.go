package version

import (
	"bytes"
	"runtime"
	"strings"
	"text/template"
)

const (
	Name = "lttb"
)

var (
	goVersion = runtime.Version()
)

var versionInfoTmpl = template.Must(template.New("version").Parse(`
{{.Name}}, version {{.Version}} (branch: {{.Branch}}, revision: {{.Revision}})
  build user:       {{.BuildUser}}@{{.BuildHost}}
  build date:       {{.BuildDate}}
  go version:       {{.GoVersion}}
`))

// Print formats the version info as a string.
func Print() string {
	var buf bytes.Buffer
	if err := versionInfoTmpl.Execute(&buf, NewInfo()); err != nil {
		panic(err)
	}
	return strings.TrimSpace(buf.String())
}

type Info struct {
	Name      string
	Version   string
	Revision  string
	Branch    string
	BuildUser string
	BuildHost string
	BuildDate string
	GoVersion string
}

func NewInfo() Info {
	return Info{
		Name:      Name,
		Version:   Version,
		Revision:  Revision,
		Branch:    Branch,
		BuildUser: BuildUser,
		BuildHost: BuildHost,
		BuildDate: BuildDate,
		GoVersion: goVersion,
	}
}

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"github.com/spf13/cobra"
	"github.com/xll-gen/bundlefile/internal/config"
	"github.com/xll-gen/bundlefile/internal/generator"
	"github.com/xll-gen/bundlefile/internal/templates"
	"github.com/xll-gen/bundlefile/internal/ui"
	"golang.org/x/mod/modfile"
)

// initCmd represents the init command.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a " + config.DefaultPath + " scaffold in the current directory",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runInit(printer, "."); err != nil {
			printer.PrintError("init", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

// runInit writes the configuration scaffold into dir.
//
// Parameters:
//   - p: Where status lines are printed.
//   - dir: The directory that receives bundlefile.yaml.
//
// Returns:
//   - error: An error if the file already exists or cannot be written.
func runInit(p *ui.Printer, dir string) error {
	dest := filepath.Join(dir, config.DefaultPath)
	if _, err := os.Stat(dest); err == nil {
		return fmt.Errorf("%s already exists", dest)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	pkg := suggestPackage(dir)
	data := struct {
		Package   string
		ChunkSize int
	}{
		Package:   pkg,
		ChunkSize: generator.DefaultChunkSize,
	}
	if err := generateFileFromTemplate(config.DefaultPath+".tmpl", dest, data); err != nil {
		return err
	}

	p.PrintSuccess("created", dest)
	p.PrintSuccess("package", pkg)
	return nil
}

// generateFileFromTemplate creates a file at destPath using the specified template and data.
func generateFileFromTemplate(tmplName, destPath string, data interface{}) error {
	content, err := templates.Get(tmplName)
	if err != nil {
		return err
	}
	t, err := template.New(tmplName).Parse(content)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(destPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if err := t.Execute(f, data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

var majorVersion = regexp.MustCompile(`^v[0-9]+$`)

// suggestPackage derives a package name from the module path in dir/go.mod,
// falling back to "main".
func suggestPackage(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "main"
	}
	modPath := modfile.ModulePath(data)
	if modPath == "" {
		return "main"
	}
	return packageNameFromModule(modPath)
}

// packageNameFromModule maps "github.com/acme/web-assets/v2" to "web_assets".
func packageNameFromModule(modPath string) string {
	elem := path.Base(modPath)
	if majorVersion.MatchString(elem) {
		elem = path.Base(path.Dir(modPath))
	}

	var b strings.Builder
	for _, r := range strings.ToLower(elem) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	name := strings.Trim(b.String(), "_")
	switch {
	case name == "":
		return "main"
	case name[0] >= '0' && name[0] <= '9':
		return "p" + name
	}
	return name
}

// Package localize builds custom-property names that are unique per stylesheet.
package localize

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/opencode-ai/themecss/internal/css"
	"github.com/opencode-ai/themecss/internal/reference"
	"github.com/opencode-ai/themecss/internal/themes"
)

// DefaultModules selects DefaultScopedName.
const DefaultModules = "default"

// Func maps a dotted theme key to a custom-property name (without the leading --).
type Func func(key string) string

// readFile is swapped in tests.
var readFile = os.ReadFile

var (
	filenameReserved = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1F]`)
	controlChars     = regexp.MustCompile(`[\x{0000}-\x{001f}\x{0080}-\x{009f}]`)
	relativePath     = regexp.MustCompile(`^\.+`)
	leadingInvalid   = regexp.MustCompile(`^((-?\d)|--)`)
	localToken       = regexp.MustCompile(`(?i)\[local\]`)
)

// New returns the localization function for one stylesheet.
//
// opts.ScopedName wins when set. Otherwise opts.Modules selects either the
// default path+hash naming or a [local]/[name]/[path]/[folder]/[ext] template.
// The stylesheet source is read at most once; a read failure is returned.
func New(opts themes.Options, source css.Source) (Func, error) {
	scoped := opts.ScopedName
	if scoped == nil && (opts.Modules == "" || opts.Modules == DefaultModules) {
		scoped = DefaultScopedName
	}

	if scoped == nil {
		template := opts.Modules
		return func(key string) string {
			return Interpolate(template, source.File, reference.Key(key))
		}, nil
	}

	contents := ""
	if source.File != "" {
		data, err := readFile(source.File)
		if err != nil {
			return nil, fmt.Errorf("read stylesheet source %s: %w", source.File, err)
		}
		contents = string(data)
	}

	return func(key string) string {
		return scoped(reference.Key(key), source.File, contents)
	}, nil
}

// DefaultScopedName derives `<path>-<name>-<hash>` where path defaults to
// "default" and hash is the first six hex digits of the source's xxhash.
func DefaultScopedName(name, filename, contents string) string {
	prefix := "default"
	if filename != "" {
		prefix = sanitize(filepath.ToSlash(filename))
	}
	hash := fmt.Sprintf("%016x", xxhash.Sum64String(contents))
	return fmt.Sprintf("%s-%s-%s", prefix, name, hash[:6])
}

// Interpolate expands a name template for resourcePath and replaces [local] with name.
func Interpolate(template, resourcePath, name string) string {
	if template == "" {
		template = "[local]"
	}

	ext := "bin"
	basename := "file"
	directory := ""
	folder := ""

	if resourcePath != "" {
		resourcePath = filepath.ToSlash(resourcePath)
		if e := path.Ext(resourcePath); e != "" {
			ext = e[1:]
		}
		dir := path.Dir(resourcePath)
		if dir != "." {
			basename = strings.TrimSuffix(path.Base(resourcePath), path.Ext(resourcePath))
			resourcePath = dir + "/"
		}
		directory = strings.ReplaceAll(resourcePath, "..", "_")
		if len(directory) <= 1 {
			directory = ""
		} else {
			folder = path.Base(directory)
		}
	}

	replacer := strings.NewReplacer(
		"[ext]", ext,
		"[name]", basename,
		"[path]", directory,
		"[folder]", folder,
		"[query]", "",
	)
	interpolated := sanitize(replacer.Replace(template))
	return localToken.ReplaceAllLiteralString(escape(interpolated), name)
}

func sanitize(name string) string {
	name = leadingInvalid.ReplaceAllString(name, "_$1")
	name = filenameReserved.ReplaceAllString(name, "-")
	name = controlChars.ReplaceAllString(name, "-")
	name = relativePath.ReplaceAllString(name, "-")
	return strings.ReplaceAll(name, ".", "-")
}

// escape applies CSS string escaping to characters that cannot appear verbatim
// in a custom-property name.
func escape(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r == '\\' || r == '\'' || r == '"':
			b.WriteRune('\\')
			b.WriteRune(r)
		case r < 0x20 || r == 0x7f || r > 0x7e:
			fmt.Fprintf(&b, "\\%X ", r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

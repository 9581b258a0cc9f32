package imports

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
)

// TSConfig is the slice of a tsconfig.json / jsconfig.json the alias
// table needs: the base URL and the path mappings, in file order.
type TSConfig struct {
	BaseURL string
	Paths   []Mapping
}

// ConfigFileNames lists the compiler configuration files probed by
// FindTSConfig, in priority order.
var ConfigFileNames = []string{"tsconfig.json", "jsconfig.json"}

// FindTSConfig loads the first compiler configuration found in
// rootDir. A missing file is reported as (nil, nil): no aliasing
// available, not an error.
func FindTSConfig(rootDir string) (*TSConfig, error) {
	for _, name := range ConfigFileNames {
		cfg, err := LoadTSConfig(filepath.Join(rootDir, name))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return nil, nil
}

// LoadTSConfig reads compilerOptions.baseUrl and compilerOptions.paths
// from the given file. The paths object is decoded with a token walk
// instead of a map so the configuration order of the aliases survives;
// that order is the declared tie-break of the resolver.
func LoadTSConfig(filename string) (*TSConfig, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(stripJSONComments(raw)))
	cfg := &TSConfig{}
	if err := parseTopLevel(dec, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}
	return cfg, nil
}

// Table resolves the loaded mapping into an alias table, with targets
// anchored at baseUrl relative to the config file's directory.
func (c *TSConfig) Table(configDir string) Table {
	if c == nil || len(c.Paths) == 0 {
		return nil
	}
	base := c.BaseURL
	if base == "" {
		base = "."
	}
	if !path.IsAbs(base) {
		base = path.Join(filepath.ToSlash(configDir), base)
	}
	return BuildTable(base, c.Paths)
}

func parseTopLevel(dec *json.Decoder, cfg *TSConfig) error {
	if err := expectDelim(dec, '{'); err != nil {
		return err
	}
	for dec.More() {
		key, err := stringToken(dec)
		if err != nil {
			return err
		}
		if key == "compilerOptions" {
			if err := parseCompilerOptions(dec, cfg); err != nil {
				return err
			}
			continue
		}
		if err := skipValue(dec); err != nil {
			return err
		}
	}
	_, err := dec.Token() // closing brace
	return err
}

func parseCompilerOptions(dec *json.Decoder, cfg *TSConfig) error {
	if err := expectDelim(dec, '{'); err != nil {
		return err
	}
	for dec.More() {
		key, err := stringToken(dec)
		if err != nil {
			return err
		}
		switch key {
		case "baseUrl":
			if err := dec.Decode(&cfg.BaseURL); err != nil {
				return err
			}
		case "paths":
			if err := parsePaths(dec, cfg); err != nil {
				return err
			}
		default:
			if err := skipValue(dec); err != nil {
				return err
			}
		}
	}
	_, err := dec.Token()
	return err
}

func parsePaths(dec *json.Decoder, cfg *TSConfig) error {
	if err := expectDelim(dec, '{'); err != nil {
		return err
	}
	for dec.More() {
		alias, err := stringToken(dec)
		if err != nil {
			return err
		}
		var targets []string
		if err := dec.Decode(&targets); err != nil {
			return err
		}
		cfg.Paths = append(cfg.Paths, Mapping{Alias: alias, Targets: targets})
	}
	_, err := dec.Token()
	return err
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func stringToken(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	s, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected string key, got %v", tok)
	}
	return s, nil
}

// skipValue consumes one complete JSON value of any shape.
func skipValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	d, ok := tok.(json.Delim)
	if !ok || (d != '{' && d != '[') {
		return nil
	}
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err == io.EOF {
			return fmt.Errorf("unexpected end of input")
		}
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
	}
	return nil
}

// stripJSONComments blanks out // and /* */ comments so the standard
// decoder accepts the JSONC dialect tsconfig files are written in.
// Comment bytes become spaces, which keeps decoder offsets stable.
func stripJSONComments(raw []byte) []byte {
	out := make([]byte, len(raw))
	copy(out, raw)

	const (
		code = iota
		inString
		lineComment
		blockComment
	)
	state := code
	for i := 0; i < len(out); i++ {
		c := out[i]
		switch state {
		case code:
			switch {
			case c == '"':
				state = inString
			case c == '/' && i+1 < len(out) && out[i+1] == '/':
				state = lineComment
				out[i] = ' '
			case c == '/' && i+1 < len(out) && out[i+1] == '*':
				state = blockComment
				out[i] = ' '
			}
		case inString:
			if c == '\\' {
				i++
			} else if c == '"' {
				state = code
			}
		case lineComment:
			if c == '\n' {
				state = code
			} else {
				out[i] = ' '
			}
		case blockComment:
			if c == '*' && i+1 < len(out) && out[i+1] == '/' {
				out[i] = ' '
				out[i+1] = ' '
				i++
				state = code
			} else if c != '\n' {
				out[i] = ' '
			}
		}
	}
	return out
}

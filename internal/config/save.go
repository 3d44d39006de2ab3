package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/scribe/internal/format"
	"github.com/zjrosen/scribe/internal/log"
)

// SaveFormat updates the format section in the config file.
// This preserves comments and formatting in other sections by using yaml.Node.
func SaveFormat(configPath string, f format.State) error {
	if err := f.Validate(); err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}
	if err := saveSection(configPath, "format", buildFormatNode(f)); err != nil {
		return err
	}
	log.Info(log.CatConfig, "Saved format", "path", configPath, "font", f.FontString())
	return nil
}

// SaveBackground updates the background color in the config file.
func SaveBackground(configPath string, c format.Color) error {
	parsed, err := format.ParseColor(string(c))
	if err != nil {
		return fmt.Errorf("invalid background: %w", err)
	}
	return saveSection(configPath, "background", stringNode(string(parsed)))
}

// saveSection replaces (or appends) the top-level key in the config file
// with value and writes the file atomically.
func saveSection(configPath, key string, value *yaml.Node) error {
	// Read existing file content
	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	// Parse into yaml.Node to preserve comments
	var doc yaml.Node
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	if doc.Kind == 0 {
		// Empty or new file - create document structure
		doc = yaml.Node{
			Kind: yaml.DocumentNode,
			Content: []*yaml.Node{
				{
					Kind: yaml.MappingNode,
					Content: []*yaml.Node{
						{Kind: yaml.ScalarNode, Value: key},
						value,
					},
				},
			},
		}
	} else if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		root := doc.Content[0]
		if root.Kind != yaml.MappingNode {
			return fmt.Errorf("parsing config: top level must be a mapping")
		}
		found := false
		for i := 0; i < len(root.Content)-1; i += 2 {
			if root.Content[i].Value == key {
				// Keep comments attached to the old value
				value.HeadComment = root.Content[i+1].HeadComment
				value.LineComment = root.Content[i+1].LineComment
				root.Content[i+1] = value
				found = true
				break
			}
		}
		if !found {
			root.Content = append(root.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: key},
				value,
			)
		}
	}

	// Marshal back to YAML
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	return writeAtomic(configPath, buf.Bytes())
}

// writeAtomic writes to a temp file in the same directory, then renames.
func writeAtomic(configPath string, data []byte) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".scribe.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, configPath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// buildFormatNode creates a yaml.Node representing the format mapping.
func buildFormatNode(f format.State) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}
	add := func(key string, value *yaml.Node) {
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, value)
	}

	add("font_family", stringNode(f.FontFamily))
	// No tag: whole sizes resolve as ints and print plain, which viper
	// still decodes into float64.
	add("font_size", &yaml.Node{Kind: yaml.ScalarNode, Value: strconv.FormatFloat(f.FontSize, 'f', -1, 64)})
	add("bold", boolNode(f.Bold))
	add("italic", boolNode(f.Italic))
	add("underline", boolNode(f.Underline))
	add("color", stringNode(string(f.Color)))
	add("align", stringNode(string(f.Align)))
	return node
}

func stringNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func boolNode(b bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(b)}
}

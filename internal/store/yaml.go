package store

import (
	"fmt"
	"io"

	"github.com/mmcdole/moviedb/internal/domain"
	"gopkg.in/yaml.v3"
)

// yamlCodec stores the same title-keyed mapping as jsonCodec, in YAML.
// Decoding goes through yaml.Node to keep file order.
type yamlCodec struct{}

func (yamlCodec) name() string { return "yaml" }

func (yamlCodec) decode(r io.Reader) (*domain.Catalog, error) {
	catalog := domain.NewCatalog()

	dec := yaml.NewDecoder(r)
	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return catalog, nil
		}
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return catalog, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected top-level mapping at line %d", root.Line)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if key.Value == "" {
			continue
		}
		var rec record
		if err := value.Decode(&rec); err != nil {
			return nil, fmt.Errorf("movie %q: %w", key.Value, err)
		}
		if err := checkRating(key.Value, rec.Rating); err != nil {
			return nil, err
		}
		catalog.Put(rec.movie(key.Value))
	}

	var extra yaml.Node
	if err := dec.Decode(&extra); err != io.EOF {
		return nil, fmt.Errorf("unexpected document after catalog: %v", err)
	}
	return catalog, nil
}

func (yamlCodec) encode(w io.Writer, c *domain.Catalog) error {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, m := range c.Movies() {
		var value yaml.Node
		if err := value.Encode(newRecord(m)); err != nil {
			return err
		}
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.Title}
		root.Content = append(root.Content, key, &value)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return err
	}
	return enc.Close()
}

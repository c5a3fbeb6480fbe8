package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Nutrient is a single nutrient name and its display value, e.g. "iron" -> "50%"
type Nutrient struct {
	Name  string
	Value string
}

// NutritionFacts keeps nutrients in the order they were declared.
// It decodes from a YAML mapping and encodes to a JSON object.
type NutritionFacts []Nutrient

// Get looks up a nutrient value by name
func (n NutritionFacts) Get(name string) (string, bool) {
	for _, nu := range n {
		if nu.Name == name {
			return nu.Value, true
		}
	}
	return "", false
}

// UnmarshalYAML decodes a mapping node, keeping key order and rejecting duplicates
func (n *NutritionFacts) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("nutritional info: expected mapping at line %d", node.Line)
	}

	facts := make(NutritionFacts, 0, len(node.Content)/2)
	seen := make(map[string]bool)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var name, value string
		if err := node.Content[i].Decode(&name); err != nil {
			return fmt.Errorf("nutritional info: %w", err)
		}
		if err := node.Content[i+1].Decode(&value); err != nil {
			return fmt.Errorf("nutritional info %q: %w", name, err)
		}
		if seen[name] {
			return fmt.Errorf("nutritional info: duplicate nutrient %q at line %d", name, node.Content[i].Line)
		}
		seen[name] = true
		facts = append(facts, Nutrient{Name: name, Value: value})
	}

	*n = facts
	return nil
}

// MarshalJSON writes the facts as a JSON object in declaration order
func (n NutritionFacts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, nu := range n {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(nu.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(nu.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object back into declaration order, rejecting duplicates
func (n *NutritionFacts) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*n = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("nutritional info: expected object, got %v", tok)
	}

	facts := NutritionFacts{}
	seen := make(map[string]bool)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("nutritional info: unexpected key %v", tok)
		}
		if seen[name] {
			return fmt.Errorf("nutritional info: duplicate nutrient %q", name)
		}
		seen[name] = true

		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("nutritional info %q: %w", name, err)
		}
		facts = append(facts, Nutrient{Name: name, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*n = facts
	return nil
}

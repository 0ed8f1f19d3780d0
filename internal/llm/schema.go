package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiled holds one compiled schema per *Schema.
var compiled sync.Map

// ValidateContent checks raw against s. A nil schema accepts anything.
// Failures are *Error values of KindInvalidResponse.
func ValidateContent(s *Schema, raw json.RawMessage) error {
	return validate("", s, raw)
}

func validate(provider string, s *Schema, raw json.RawMessage) error {
	if s == nil {
		return nil
	}
	invalid := func(err error) error {
		return &Error{Kind: KindInvalidResponse, Provider: provider, Content: raw, Err: err}
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return invalid(fmt.Errorf("decode %s response: %w", s.Name, err))
	}
	sch, err := compile(s)
	if err != nil {
		return invalid(err)
	}
	if err := sch.Validate(doc); err != nil {
		return invalid(fmt.Errorf("%s: %w", s.Name, err))
	}
	return nil
}

func compile(s *Schema) (*jsonschema.Schema, error) {
	if v, ok := compiled.Load(s); ok {
		return v.(*jsonschema.Schema), nil
	}

	// Round-trip through JSON so the compiler sees json.Number and []any
	// rather than Go ints and []string.
	def, err := json.Marshal(s.Definition)
	if err != nil {
		return nil, fmt.Errorf("encode schema %s: %w", s.Name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(def))
	if err != nil {
		return nil, fmt.Errorf("decode schema %s: %w", s.Name, err)
	}

	url := "mem://schemas/" + s.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("load schema %s: %w", s.Name, err)
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", s.Name, err)
	}
	compiled.Store(s, sch)
	return sch, nil
}

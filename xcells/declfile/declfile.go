// Package declfile loads variable-array declarations from HCL files. This is
// the one concrete front-end of the repo; the resolution core itself is
// format-agnostic and consumes the declarations this package produces.
//
// A declarations file looks like:
//
//	array "x" {
//	  size = [2, 3]
//	  type = "integer"
//	  domain {
//	    for    = "x[0][0..1]"
//	    values = "1..10"
//	  }
//	  domain {
//	    for    = "others"
//	    values = [0, 1]
//	  }
//	}
package declfile

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/cspforge/xcells/xcells/declare"
	"github.com/cspforge/xcells/xcells/domains"
	"github.com/cspforge/xcells/xcells/varrays"
)

// hclDeclFile represents the top-level structure of a declarations file for decoding.
type hclDeclFile struct {
	Arrays []*hclArray `hcl:"array,block"`
}

type hclArray struct {
	ID      string       `hcl:"id,label"`
	Size    []int        `hcl:"size,optional"`
	Type    string       `hcl:"type,optional"`
	Domains []*hclDomain `hcl:"domain,block"`
}

type hclDomain struct {
	For string `hcl:"for"`
	// Values stays an expression so string literals, ranges and value lists
	// can all be accepted; it is evaluated and converted per array type.
	Values hcl.Expression `hcl:"values"`
}

// Load parses one declarations file and returns its declarations in file
// order, domain pairs in block order.
func Load(path string) ([]declare.Declaration, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse declarations file %s: %w", path, diags)
	}

	var parsed hclDeclFile
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode declarations file %s: %w", path, diags)
	}

	decls := make([]declare.Declaration, 0, len(parsed.Arrays))
	for _, a := range parsed.Arrays {
		decl, err := buildDeclaration(a)
		if err != nil {
			return nil, fmt.Errorf("array %q in %s: %w", a.ID, path, err)
		}
		decls = append(decls, decl)
	}
	return decls, nil
}

func buildDeclaration(a *hclArray) (declare.Declaration, error) {
	typeName := a.Type
	if typeName == "" {
		typeName = "integer"
	}
	tag, ok := varrays.ParseTypeTag(typeName)
	if !ok {
		return declare.Declaration{}, fmt.Errorf("unknown variable type %q", typeName)
	}

	decl := declare.Declaration{
		ID:    a.ID,
		Sizes: a.Size,
		Type:  tag,
		Specs: make([]declare.DomainSpec, 0, len(a.Domains)),
	}
	for _, d := range a.Domains {
		dom, err := evalDomain(d.Values, tag)
		if err != nil {
			return declare.Declaration{}, fmt.Errorf("domain for %q: %w", d.For, err)
		}
		decl.Specs = append(decl.Specs, declare.DomainSpec{
			Spec:   varrays.ParseSpec(d.For),
			Domain: dom,
		})
	}
	return decl, nil
}

// evalDomain evaluates a values expression and converts it to a domain. A
// string literal is parsed as a range or value list; a list literal becomes
// an explicit set, integer or symbolic depending on its element type.
func evalDomain(expr hcl.Expression, tag varrays.TypeTag) (domains.Domain, error) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to evaluate values: %w", diags)
	}

	switch {
	case val.Type() == cty.String:
		if tag == varrays.TypeSymbolic || tag == varrays.TypeSymbolicSet {
			return domains.SymbolSet{Symbols: strings.Fields(val.AsString())}, nil
		}
		return domains.ParseInt(val.AsString())

	case val.Type().IsTupleType() || val.Type().IsListType():
		return listToDomain(val)

	default:
		return nil, fmt.Errorf("unsupported values literal of type %s", val.Type().FriendlyName())
	}
}

func listToDomain(val cty.Value) (domains.Domain, error) {
	elems := val.AsValueSlice()
	if len(elems) == 0 {
		return nil, fmt.Errorf("empty values list")
	}

	if elems[0].Type() == cty.String {
		symbols := make([]string, len(elems))
		for i, el := range elems {
			if el.Type() != cty.String {
				return nil, fmt.Errorf("mixed value types in list")
			}
			symbols[i] = el.AsString()
		}
		return domains.SymbolSet{Symbols: symbols}, nil
	}

	values := make([]int64, len(elems))
	for i, el := range elems {
		if err := gocty.FromCtyValue(el, &values[i]); err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
	}
	return domains.IntSet{Values: values}, nil
}

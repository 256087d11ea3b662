package funcall

import (
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// definition is the model-facing description of one tool, shaped for
// system-prompt injection.
type definition struct {
	Type     string      `json:"type"`
	Function functionDef `json:"function"`
}

type functionDef struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	InputSchema inputSchema `json:"inputSchema"`
}

type inputSchema struct {
	Type       string                                   `json:"type"`
	Properties *orderedmap.OrderedMap[string, property] `json:"properties"`
	Required   []string                                 `json:"required"`
}

type property struct {
	Type        Datatype `json:"type"`
	Description string   `json:"description"`
	IsRequired  bool     `json:"isRequired"`
}

// encodeDefinition renders the schema for a tool. Property order must match
// parameter declaration order; an insertion-ordered map gives that guarantee
// natively, where encoding/json maps would not. The required list holds
// exactly the labels of non-optional parameters, in declaration order.
func encodeDefinition(name, description string, params []Param) ([]byte, error) {
	props := orderedmap.New[string, property]()
	required := make([]string, 0, len(params))
	for _, p := range params {
		props.Set(p.Label, property{
			Type:        p.Type,
			Description: p.Description,
			IsRequired:  !p.Optional,
		})
		if !p.Optional {
			required = append(required, p.Label)
		}
	}
	return json.Marshal(definition{
		Type: "function",
		Function: functionDef{
			Name:        name,
			Description: description,
			InputSchema: inputSchema{
				Type:       "object",
				Properties: props,
				Required:   required,
			},
		},
	})
}

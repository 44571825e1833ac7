package tool

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/cloudwego/eino/schema"

	contractx "github.com/tanpawarit/a2a-support-desk/agent/contract"
)

func TestCatalogListsEveryTool(t *testing.T) {
	t.Parallel()

	tools := Catalog()
	want := contractx.ToolNames()
	if len(tools) != len(want) {
		t.Fatalf("expected %d tools, got %d", len(want), len(tools))
	}
	for i, name := range want {
		if tools[i].Name != string(name) {
			t.Fatalf("tool[%d] = %s, want %s", i, tools[i].Name, name)
		}
		if strings.TrimSpace(tools[i].Description) == "" {
			t.Fatalf("tool %s has no description", name)
		}
	}
}

func TestCatalogAnnotations(t *testing.T) {
	t.Parallel()

	readOnly := map[string]bool{
		"get_customer":         true,
		"list_customers":       true,
		"get_customer_history": true,
		"update_customer":      false,
		"create_ticket":        false,
	}
	for _, tl := range Catalog() {
		want, ok := readOnly[tl.Name]
		if !ok {
			t.Fatalf("unexpected tool %s", tl.Name)
		}
		ann := tl.Annotations
		if ann.ReadOnlyHint == nil || *ann.ReadOnlyHint != want {
			t.Fatalf("%s readOnlyHint = %v, want %v", tl.Name, ann.ReadOnlyHint, want)
		}
		if !want && (ann.DestructiveHint == nil || *ann.DestructiveHint) {
			t.Fatalf("%s should not be marked destructive", tl.Name)
		}
	}
}

func TestCatalogSchemaEnumsAndDefaults(t *testing.T) {
	t.Parallel()

	byName := map[string]string{}
	for _, tl := range Catalog() {
		raw, err := json.Marshal(tl.InputSchema)
		if err != nil {
			t.Fatalf("marshal schema for %s: %v", tl.Name, err)
		}
		byName[tl.Name] = string(raw)
	}

	cases := []struct {
		tool string
		want []string
	}{
		{tool: "list_customers", want: []string{`"enum":["active","disabled"]`, `"default":10`}},
		{tool: "create_ticket", want: []string{`"enum":["low","medium","high"]`, `"default":"medium"`, `"required":["customer_id","issue"]`}},
		{tool: "get_customer", want: []string{`"required":["customer_id"]`}},
		{tool: "update_customer", want: []string{`"required":["customer_id","data"]`}},
	}
	for _, tc := range cases {
		got := byName[tc.tool]
		for _, w := range tc.want {
			if !strings.Contains(got, w) {
				t.Fatalf("schema for %s = %s, missing %s", tc.tool, got, w)
			}
		}
	}
}

func TestToolInfosProjection(t *testing.T) {
	t.Parallel()

	infos := ToolInfos(Catalog())
	if len(infos) != 5 {
		t.Fatalf("expected 5 tool infos, got %d", len(infos))
	}
	if infos[3].Name != "create_ticket" {
		t.Fatalf("unexpected tool order: %s", infos[3].Name)
	}

	if infos[3].ParamsOneOf == nil {
		t.Fatal("expected params for create_ticket")
	}
	if infos[3].Desc != "Create a support ticket for a customer." {
		t.Fatalf("unexpected description: %q", infos[3].Desc)
	}

	create := Catalog()[3]
	prop, _ := create.InputSchema.Properties["priority"].(map[string]any)
	info := parameterInfo(prop, false)
	if info.Type != schema.String {
		t.Fatalf("priority type = %s, want string", info.Type)
	}
	if strings.Join(info.Enum, ",") != "low,medium,high" {
		t.Fatalf("priority enum = %v", info.Enum)
	}

	idProp, _ := create.InputSchema.Properties["customer_id"].(map[string]any)
	if got := parameterInfo(idProp, true); got.Type != schema.Number || !got.Required {
		t.Fatalf("customer_id info = %+v", got)
	}
}

func TestParameterInfoEnumFromDecodedJSON(t *testing.T) {
	t.Parallel()

	info := parameterInfo(map[string]any{
		"type":        "string",
		"description": "Ticket priority",
		"enum":        []any{"low", "medium", "high"},
	}, false)
	if info.Type != schema.String {
		t.Fatalf("unexpected type: %s", info.Type)
	}
	if len(info.Enum) != 3 || info.Enum[2] != "high" {
		t.Fatalf("unexpected enum: %v", info.Enum)
	}
	if info.Required {
		t.Fatal("expected optional parameter")
	}
}

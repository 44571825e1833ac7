package tool

import (
	"sort"

	"github.com/cloudwego/eino/schema"
	"github.com/mark3labs/mcp-go/mcp"

	contractx "github.com/tanpawarit/a2a-support-desk/agent/contract"
)

// Catalog is the static tool list. tools/list serves it sorted by name.
func Catalog() []mcp.Tool {
	return []mcp.Tool{
		mcp.NewTool(string(contractx.ToolGetCustomer),
			mcp.WithDescription("Retrieve a specific customer by ID."),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithNumber("customer_id",
				mcp.Required(),
				mcp.Description("The unique ID of the customer"),
			),
		),
		mcp.NewTool(string(contractx.ToolListCustomers),
			mcp.WithDescription("List customers, optionally by status and with a limit."),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithString("status",
				mcp.Enum(string(contractx.CustomerActive), string(contractx.CustomerDisabled)),
				mcp.Description("Optional filter by status"),
			),
			mcp.WithNumber("limit",
				mcp.DefaultNumber(contractx.DefaultListLimit),
				mcp.Description("Maximum number of customers to return"),
			),
		),
		mcp.NewTool(string(contractx.ToolUpdateCustomer),
			mcp.WithDescription("Update an existing customer's fields using a data object."),
			mcp.WithDestructiveHintAnnotation(false),
			mcp.WithNumber("customer_id",
				mcp.Required(),
				mcp.Description("The ID of the customer to update"),
			),
			mcp.WithObject("data",
				mcp.Required(),
				mcp.Description("Fields to update (name, email, phone, status)."),
			),
		),
		mcp.NewTool(string(contractx.ToolCreateTicket),
			mcp.WithDescription("Create a support ticket for a customer."),
			mcp.WithDestructiveHintAnnotation(false),
			mcp.WithNumber("customer_id",
				mcp.Required(),
				mcp.Description("Customer ID"),
			),
			mcp.WithString("issue",
				mcp.Required(),
				mcp.Description("Description of the issue"),
			),
			mcp.WithString("priority",
				mcp.Enum(string(contractx.PriorityLow), string(contractx.PriorityMedium), string(contractx.PriorityHigh)),
				mcp.DefaultString(string(contractx.PriorityMedium)),
				mcp.Description("Ticket priority"),
			),
		),
		mcp.NewTool(string(contractx.ToolGetCustomerHistory),
			mcp.WithDescription("Get all tickets for a customer."),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithNumber("customer_id",
				mcp.Required(),
				mcp.Description("Customer ID"),
			),
		),
	}
}

// ToolInfos projects an MCP catalogue onto eino tool descriptors so a
// tool-calling model can bind the remote tools.
func ToolInfos(tools []mcp.Tool) []*schema.ToolInfo {
	infos := make([]*schema.ToolInfo, 0, len(tools))
	for _, t := range tools {
		required := make(map[string]bool, len(t.InputSchema.Required))
		for _, name := range t.InputSchema.Required {
			required[name] = true
		}

		names := make([]string, 0, len(t.InputSchema.Properties))
		for name := range t.InputSchema.Properties {
			names = append(names, name)
		}
		sort.Strings(names)

		params := make(map[string]*schema.ParameterInfo, len(names))
		for _, name := range names {
			prop, _ := t.InputSchema.Properties[name].(map[string]any)
			params[name] = parameterInfo(prop, required[name])
		}

		infos = append(infos, &schema.ToolInfo{
			Name:        t.Name,
			Desc:        t.Description,
			ParamsOneOf: schema.NewParamsOneOfByParams(params),
		})
	}
	return infos
}

func parameterInfo(prop map[string]any, required bool) *schema.ParameterInfo {
	info := &schema.ParameterInfo{Required: required}
	if desc, ok := prop["description"].(string); ok {
		info.Desc = desc
	}

	switch prop["type"] {
	case "number":
		info.Type = schema.Number
	case "integer":
		info.Type = schema.Integer
	case "boolean":
		info.Type = schema.Boolean
	case "object":
		info.Type = schema.Object
	case "array":
		info.Type = schema.Array
	default:
		info.Type = schema.String
	}

	switch enum := prop["enum"].(type) {
	case []string:
		info.Enum = append([]string(nil), enum...)
	case []any:
		for _, v := range enum {
			if s, ok := v.(string); ok {
				info.Enum = append(info.Enum, s)
			}
		}
	}
	return info
}

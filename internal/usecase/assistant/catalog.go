package assistant

import "oficina_assistant/internal/domain/entities"

// Tool names are part of the contract with the model and with stored
// conversations; never rename them.
const (
	ToolListCustomers             = "list_customers"
	ToolCreateCustomer            = "create_customer"
	ToolListVehicles              = "list_vehicles"
	ToolCreateVehicle             = "create_vehicle"
	ToolListQuotes                = "list_quotes"
	ToolCreateQuoteFromDiagnostic = "create_quote_from_diagnostic"
	ToolListServiceItems          = "list_service_items"
	ToolGetDashboardStats         = "get_dashboard_stats"
	ToolGetVehicleHistory         = "get_vehicle_history"
	ToolGetDiagnosticSuggestions  = "get_diagnostic_suggestions"
	ToolCreateMaintenanceReminder = "create_maintenance_reminder"
	ToolListSuppliers             = "list_suppliers"
	ToolCreateSupplier            = "create_supplier"
)

func prop(typ, description string) map[string]any {
	return map[string]any{"type": typ, "description": description}
}

func enumProp(description string, values ...string) map[string]any {
	return map[string]any{"type": "string", "description": description, "enum": values}
}

func toolParams(properties map[string]any, required ...string) map[string]any {
	if required == nil {
		required = []string{}
	}
	return map[string]any{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}

var toolCatalog = []entities.ToolDescriptor{
	{
		Name:        ToolListCustomers,
		Description: "Lista os clientes da oficina. Use search_name para filtrar por parte do nome.",
		Parameters: toolParams(map[string]any{
			"search_name": prop("string", "Trecho do nome do cliente (opcional)"),
		}),
	},
	{
		Name:        ToolCreateCustomer,
		Description: "Cadastra um novo cliente. Nome e telefone são obrigatórios.",
		Parameters: toolParams(map[string]any{
			"name":     prop("string", "Nome completo"),
			"phone":    prop("string", "Telefone com DDD"),
			"email":    prop("string", "E-mail"),
			"document": prop("string", "CPF ou CNPJ"),
			"address":  prop("string", "Endereço"),
			"notes":    prop("string", "Observações"),
		}, "name", "phone"),
	},
	{
		Name:        ToolListVehicles,
		Description: "Lista veículos da oficina, opcionalmente de um cliente ou por trecho da placa.",
		Parameters: toolParams(map[string]any{
			"customer_id":  prop("string", "ID do cliente"),
			"search_plate": prop("string", "Trecho da placa"),
		}),
	},
	{
		Name:        ToolCreateVehicle,
		Description: "Cadastra um veículo para um cliente existente.",
		Parameters: toolParams(map[string]any{
			"customer_id": prop("string", "ID do cliente dono do veículo"),
			"plate":       prop("string", "Placa"),
			"brand":       prop("string", "Marca"),
			"model":       prop("string", "Modelo"),
			"year":        prop("integer", "Ano"),
			"color":       prop("string", "Cor"),
			"mileage":     prop("integer", "Quilometragem atual"),
		}, "customer_id", "plate", "brand", "model"),
	},
	{
		Name:        ToolListQuotes,
		Description: "Lista orçamentos, do mais recente para o mais antigo.",
		Parameters: toolParams(map[string]any{
			"customer_id": prop("string", "ID do cliente"),
			"vehicle_id":  prop("string", "ID do veículo"),
			"status": enumProp("Status do orçamento",
				string(entities.QuoteStatusEmAnalise), string(entities.QuoteStatusAprovada),
				string(entities.QuoteStatusRecusada), string(entities.QuoteStatusConcluida)),
		}),
	},
	{
		Name: ToolCreateQuoteFromDiagnostic,
		Description: "Cria um orçamento a partir de um diagnóstico. Itens sugeridos são associados ao catálogo " +
			"quando possível; os demais entram com preço zero para precificação manual.",
		Parameters: toolParams(map[string]any{
			"customer_id":      prop("string", "ID do cliente"),
			"vehicle_id":       prop("string", "ID do veículo"),
			"vehicle_mileage":  prop("integer", "Quilometragem no momento do atendimento"),
			"diagnostic_notes": prop("string", "Resumo do diagnóstico"),
			"suggested_items": map[string]any{
				"type":        "array",
				"description": "Nomes de serviços e peças sugeridos",
				"items":       map[string]any{"type": "string"},
			},
		}, "customer_id", "vehicle_id", "diagnostic_notes"),
	},
	{
		Name:        ToolListServiceItems,
		Description: "Lista serviços e peças do catálogo/estoque.",
		Parameters: toolParams(map[string]any{
			"search_name": prop("string", "Trecho do nome"),
			"type":        enumProp("Tipo do item", string(entities.ServiceItemTypeServico), string(entities.ServiceItemTypePeca)),
		}),
	},
	{
		Name:        ToolGetDashboardStats,
		Description: "Resumo do mês atual: faturamento, valores pendentes e orçamentos por status.",
		Parameters:  toolParams(map[string]any{}),
	},
	{
		Name:        ToolGetVehicleHistory,
		Description: "Histórico de atendimentos (orçamentos) de um veículo.",
		Parameters: toolParams(map[string]any{
			"vehicle_id": prop("string", "ID do veículo"),
		}, "vehicle_id"),
	},
	{
		Name:        ToolGetDiagnosticSuggestions,
		Description: "Sugere causas, peças, serviços e horas estimadas a partir dos sintomas relatados.",
		Parameters: toolParams(map[string]any{
			"symptoms": prop("string", "Sintomas descritos pelo cliente"),
		}, "symptoms"),
	},
	{
		Name:        ToolCreateMaintenanceReminder,
		Description: "Agenda um lembrete de manutenção para o veículo de um cliente.",
		Parameters: toolParams(map[string]any{
			"customer_id":   prop("string", "ID do cliente"),
			"vehicle_id":    prop("string", "ID do veículo"),
			"service_name":  prop("string", "Serviço a lembrar"),
			"reminder_type": enumProp("Tipo do lembrete", entities.ReminderTypeData, entities.ReminderTypeQuilometragem),
			"due_date":      prop("string", "Data prevista (AAAA-MM-DD)"),
			"due_mileage":   prop("integer", "Quilometragem prevista"),
			"notes":         prop("string", "Observações"),
		}, "customer_id", "vehicle_id", "service_name", "reminder_type"),
	},
	{
		Name:        ToolListSuppliers,
		Description: "Lista fornecedores da oficina.",
		Parameters: toolParams(map[string]any{
			"search_name": prop("string", "Trecho do nome"),
		}),
	},
	{
		Name:        ToolCreateSupplier,
		Description: "Cadastra um fornecedor. Apenas o nome é obrigatório.",
		Parameters: toolParams(map[string]any{
			"name":         prop("string", "Razão social ou nome fantasia"),
			"phone":        prop("string", "Telefone"),
			"email":        prop("string", "E-mail"),
			"document":     prop("string", "CNPJ"),
			"contact_name": prop("string", "Pessoa de contato"),
			"notes":        prop("string", "Observações"),
		}, "name"),
	},
}

// Catalog returns the tool descriptors sent to the model on every round.
func Catalog() []entities.ToolDescriptor {
	out := make([]entities.ToolDescriptor, len(toolCatalog))
	copy(out, toolCatalog)
	return out
}

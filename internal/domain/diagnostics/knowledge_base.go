// Package diagnostics holds the static symptom knowledge base used by the
// assistant to suggest causes, parts and services before a quote is built.
package diagnostics

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Suggestion is the result of a symptom lookup.
type Suggestion struct {
	Causes         []string `json:"causes"`
	Parts          []string `json:"parts"`
	Services       []string `json:"services"`
	EstimatedHours float64  `json:"estimated_hours"`
}

type entry struct {
	keywords []string
	Suggestion
}

// knowledge is scanned in order and the first entry with a matching keyword
// wins. Keep "marcha lenta" (injection) ahead of "marcha" (gearbox).
var knowledge = []entry{
	{
		keywords: []string{"freio", "freia", "frear", "pastilha", "disco de freio", "pedal baixo"},
		Suggestion: Suggestion{
			Causes:         []string{"Pastilhas de freio gastas", "Discos de freio empenados ou gastos", "Fluido de freio baixo ou contaminado", "Vazamento no sistema hidráulico"},
			Parts:          []string{"Pastilha de freio", "Disco de freio", "Fluido de freio DOT 4"},
			Services:       []string{"Troca de pastilhas de freio", "Retífica ou troca de discos", "Sangria do sistema de freio"},
			EstimatedHours: 2,
		},
	},
	{
		keywords: []string{"oleo", "luz do oleo", "pressao do oleo"},
		Suggestion: Suggestion{
			Causes:         []string{"Nível de óleo baixo", "Vazamento pelo cárter ou retentores", "Óleo vencido ou degradado", "Bomba de óleo com baixa pressão"},
			Parts:          []string{"Óleo do motor", "Filtro de óleo", "Junta do cárter"},
			Services:       []string{"Troca de óleo", "Troca de filtro de óleo", "Verificação de vazamentos"},
			EstimatedHours: 1,
		},
	},
	{
		keywords: []string{"superaquec", "esquentando", "temperatura", "ferve", "fervendo", "radiador", "arrefecimento"},
		Suggestion: Suggestion{
			Causes:         []string{"Líquido de arrefecimento baixo", "Válvula termostática travada", "Bomba d'água com defeito", "Radiador obstruído", "Eletroventilador inoperante"},
			Parts:          []string{"Aditivo de radiador", "Válvula termostática", "Bomba d'água", "Mangueiras do radiador"},
			Services:       []string{"Limpeza do sistema de arrefecimento", "Troca de válvula termostática", "Troca da bomba d'água"},
			EstimatedHours: 3,
		},
	},
	{
		keywords: []string{"bateria", "nao liga", "nao pega", "nao da partida", "partida", "motor de arranque"},
		Suggestion: Suggestion{
			Causes:         []string{"Bateria descarregada ou no fim da vida útil", "Alternador sem carga", "Motor de arranque com defeito", "Terminais oxidados"},
			Parts:          []string{"Bateria", "Alternador", "Motor de arranque"},
			Services:       []string{"Teste de bateria e alternador", "Troca de bateria", "Revisão do sistema de partida"},
			EstimatedHours: 1.5,
		},
	},
	{
		keywords: []string{"embreagem", "patina", "patinando", "pedal duro"},
		Suggestion: Suggestion{
			Causes:         []string{"Disco de embreagem gasto", "Platô com defeito", "Rolamento de embreagem ruidoso", "Cabo ou atuador hidráulico com problema"},
			Parts:          []string{"Kit de embreagem", "Rolamento de embreagem", "Cabo de embreagem"},
			Services:       []string{"Troca do kit de embreagem", "Regulagem de embreagem"},
			EstimatedHours: 4,
		},
	},
	{
		keywords: []string{"marcha lenta", "falhando", "falha", "engasga", "injecao", "luz do motor", "bico"},
		Suggestion: Suggestion{
			Causes:         []string{"Velas de ignição gastas", "Bicos injetores sujos", "Bobina de ignição com defeito", "Sensor com leitura incorreta", "Corpo de borboleta sujo"},
			Parts:          []string{"Jogo de velas", "Cabos de vela", "Bobina de ignição", "Filtro de combustível"},
			Services:       []string{"Scanner automotivo", "Limpeza de bicos injetores", "Troca de velas", "Limpeza do corpo de borboleta"},
			EstimatedHours: 2,
		},
	},
	{
		keywords: []string{"cambio", "marcha", "engrenando", "arranhando"},
		Suggestion: Suggestion{
			Causes:         []string{"Óleo de câmbio baixo ou vencido", "Sincronizadores gastos", "Trambulador desregulado"},
			Parts:          []string{"Óleo de câmbio", "Kit de trambulador"},
			Services:       []string{"Troca de óleo do câmbio", "Regulagem do trambulador", "Revisão do câmbio"},
			EstimatedHours: 3,
		},
	},
	{
		keywords: []string{"suspensao", "amortecedor", "batendo", "barulho na roda", "estalo", "bucha", "pivo"},
		Suggestion: Suggestion{
			Causes:         []string{"Amortecedores gastos", "Buchas da bandeja ressecadas", "Pivô ou terminal de direção com folga", "Bieleta danificada"},
			Parts:          []string{"Amortecedor", "Kit batente e coifa", "Bucha da bandeja", "Bieleta", "Pivô"},
			Services:       []string{"Revisão de suspensão", "Troca de amortecedores", "Alinhamento e balanceamento"},
			EstimatedHours: 3,
		},
	},
	{
		keywords: []string{"alinhamento", "balanceamento", "puxando", "puxa para", "trepida", "vibra", "pneu"},
		Suggestion: Suggestion{
			Causes:         []string{"Desalinhamento da direção", "Rodas desbalanceadas", "Pneus com desgaste irregular"},
			Parts:          []string{"Pneu", "Pesos de balanceamento"},
			Services:       []string{"Alinhamento", "Balanceamento", "Rodízio de pneus"},
			EstimatedHours: 1,
		},
	},
	{
		keywords: []string{"direcao pesada", "direcao hidraulica", "direcao eletrica", "volante duro"},
		Suggestion: Suggestion{
			Causes:         []string{"Fluido da direção hidráulica baixo", "Bomba da direção com defeito", "Caixa de direção com vazamento"},
			Parts:          []string{"Fluido de direção hidráulica", "Bomba de direção", "Mangueira de pressão"},
			Services:       []string{"Revisão da direção", "Troca do fluido de direção"},
			EstimatedHours: 2.5,
		},
	},
	{
		keywords: []string{"ar condicionado", "ar nao gela", "nao gela", "climatizador"},
		Suggestion: Suggestion{
			Causes:         []string{"Gás refrigerante baixo", "Compressor com defeito", "Filtro de cabine saturado", "Condensador obstruído"},
			Parts:          []string{"Gás refrigerante", "Filtro de cabine", "Compressor do ar"},
			Services:       []string{"Higienização do ar condicionado", "Recarga de gás", "Troca do filtro de cabine"},
			EstimatedHours: 1.5,
		},
	},
	{
		keywords: []string{"fumaca", "fumando", "cheiro de queimado"},
		Suggestion: Suggestion{
			Causes:         []string{"Queima de óleo por anéis ou retentores de válvula", "Junta do cabeçote queimada", "Mistura ar/combustível rica"},
			Parts:          []string{"Junta do cabeçote", "Retentores de válvula", "Jogo de anéis"},
			Services:       []string{"Teste de compressão", "Diagnóstico de motor"},
			EstimatedHours: 2,
		},
	},
}

var fallback = Suggestion{
	Causes:         []string{"Diagnóstico genérico - recomenda-se inspeção no veículo"},
	Parts:          []string{},
	Services:       []string{"Diagnóstico mecânico", "Inspeção geral"},
	EstimatedHours: 1,
}

// Lookup returns the first knowledge entry whose keyword appears in the
// normalized symptom text, or a generic inspection suggestion.
func Lookup(symptoms string) Suggestion {
	text := Normalize(symptoms)
	if text != "" {
		for _, e := range knowledge {
			for _, kw := range e.keywords {
				if strings.Contains(text, kw) {
					return clone(e.Suggestion)
				}
			}
		}
	}
	return clone(fallback)
}

// Normalize lower-cases, strips diacritics and trims s.
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.TrimSpace(strings.ToLower(out))
}

func clone(s Suggestion) Suggestion {
	return Suggestion{
		Causes:         append([]string{}, s.Causes...),
		Parts:          append([]string{}, s.Parts...),
		Services:       append([]string{}, s.Services...),
		EstimatedHours: s.EstimatedHours,
	}
}

package outwriter

import "github.com/huangsam/psicosocial/schema"

func companyTables(companies []schema.Company) tableSet {
	t := dataTable{Title: "Empresas", Header: []string{"ID", "Nombre", "NIT", "Creada"}}
	for _, c := range companies {
		t.Rows = append(t.Rows, []any{c.ID, c.Name, c.Nit, c.CreatedAt})
	}
	if companies == nil {
		companies = []schema.Company{}
	}
	return tableSet{Tables: []dataTable{t}, JSON: companies}
}

func campaignTables(campaigns []schema.Campaign) tableSet {
	t := dataTable{Title: "Campañas", Header: []string{"ID", "Empresa", "Nombre", "Token", "Activa", "Creada"}}
	for _, c := range campaigns {
		t.Rows = append(t.Rows, []any{c.ID, c.CompanyID, c.Name, c.Token, c.IsActive, c.CreatedAt})
	}
	if campaigns == nil {
		campaigns = []schema.Campaign{}
	}
	return tableSet{Tables: []dataTable{t}, JSON: campaigns}
}

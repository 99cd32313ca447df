package model

// Application roles.
const (
	RolAdministrador = "ADMINISTRADOR"
	RolDisenador     = "DISEÑADOR"
	RolVendedor      = "VENDEDOR"
)

// Usuario is the document stored in the users collection.
// PasswordHash holds a bcrypt hash, never the plain password.
type Usuario struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Nombre       string `json:"name"`
	Email        string `json:"email,omitempty"`
	PasswordHash string `json:"passwordHash"`
	Rol          string `json:"role"`
	Avatar       string `json:"avatar,omitempty"`
	Inactivo     bool   `json:"disabled,omitempty"`
}

// Branding is the single company settings document.
type Branding struct {
	NombreEmpresa   string `json:"companyName"`
	RazonSocial     string `json:"legalName,omitempty"`
	Logo            string `json:"logo,omitempty"`
	ColorPrimario   string `json:"primaryColor,omitempty"`
	ColorSecundario string `json:"secondaryColor,omitempty"`
	Direccion       string `json:"address,omitempty"`
	Telefono        string `json:"phone,omitempty"`
	Email           string `json:"email,omitempty"`
	Web             string `json:"website,omitempty"`
	ClaveIA         string `json:"geminiApiKey,omitempty"`
}

package domain

// Provider identifica al proveedor LLM de una credencial o modelo
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
)

// CredentialStatus es el estado conocido de una API key
type CredentialStatus string

const (
	StatusUntested CredentialStatus = "untested"
	StatusChecking CredentialStatus = "checking"
	StatusValid    CredentialStatus = "valid"
	StatusInvalid  CredentialStatus = "invalid"
)

// ProviderForModel mapea un nombre de modelo a su proveedor.
// Único punto donde se inspecciona el string del modelo.
func ProviderForModel(model string) Provider {
	if len(model) >= 6 && model[:6] == "gemini" {
		return ProviderGemini
	}
	return ProviderOpenAI
}

// ChatRole es el rol de un turno en el chat de entrenamiento
type ChatRole string

const (
	RoleUser  ChatRole = "user"
	RoleModel ChatRole = "model"
)

// ChatMessage es un turno del historial de entrenamiento
type ChatMessage struct {
	Role ChatRole `json:"role"`
	Text string   `json:"text"`
}

// DefaultTrainingHistory es el historial semilla del chat de
// entrenamiento cuando todavía no hay nada guardado
func DefaultTrainingHistory() []ChatMessage {
	return []ChatMessage{
		{
			Role: RoleUser,
			Text: "Remember the following ground rules for every niche analysis: prefer niches with demonstrated search demand but few dedicated channels, weigh monetization by advertiser-friendly topics and product tie-ins, and always consider whether the format is sustainable for a solo creator producing weekly.",
		},
		{
			Role: RoleModel,
			Text: "Understood. I will apply those criteria — search demand versus dedicated competition, advertiser-friendly monetization, and solo-creator sustainability — to every niche analysis going forward.",
		},
		{
			Role: RoleModel,
			Text: "Hi, I am your YouTube niche analysis assistant. You can teach me additional knowledge here, or start searching for niche ideas right away.",
		},
	}
}

package i18n

// catalog holds every message per locale. Each locale defines the same keys.
var catalog = map[string]map[string]string{
	"en": english,
	"pt": portuguese,
	"nl": dutch,
}

var english = map[string]string{
	ErrKeyInvalidRequest:       "Invalid request",
	ErrKeyInvalidRequestBody:   "Invalid request body",
	ErrKeyInternalError:        "An unexpected error occurred",
	ErrKeyUnauthorized:         "Unauthorized",
	ErrKeyInvalidCredentials:   "Invalid email or password",
	ErrKeyAPIKeyRequired:       "API key is required",
	ErrKeyInvalidAPIKey:        "Invalid API key",
	ErrKeyForbidden:            "Forbidden",
	ErrKeyNotFound:             "Not found",
	ErrKeyRateLimitExceeded:    "Too many requests, please try again later",
	ErrKeyConflict:             "Conflict",
	ErrKeyInvalidToken:         "Invalid or expired token",
	ErrKeyTokenRequired:        "Authentication token is required",
	ErrKeyUserExists:           "A user with this email already exists",
	ErrKeyRefreshTokenRequired: "X-Refresh-Token header is required",
	ErrKeyTimeout:              "The request took too long to complete",
	ErrKeyServiceUnavailable:   "Service temporarily unavailable, please retry",
	ErrKeyNoFarm:               "You are not a member of any farm",
	ErrKeyFarmExists:           "You already belong to a farm",
	ErrKeyFarmNotFound:         "Farm not found",
	ErrKeyBatchNotFound:        "Batch not found",
	ErrKeyHouseNotFound:        "House not found",
	ErrKeyAllocationNotFound:   "Allocation not found",
	ErrKeyStockNotFound:        "Stock item not found",
	ErrKeyProductionNotFound:   "Production record not found",
	ErrKeyFormulaNotFound:      "Feed formula not found",
	ErrKeyInvalidQuantity:      "quantity: must be a positive integer",
	ErrKeyInsufficientBirds:    "Not enough birds available",
	ErrKeyCapacityExceeded:     "House capacity exceeded",
	ErrKeySameHouse:            "Source and destination house must differ",
	ErrKeyCapacityBelowUse:     "Capacity cannot be lower than the birds in the house",
	ErrKeyLossesExceedBatch:    "Losses cannot exceed the batch's original count",
	ErrKeyEggCountExceeded:     "Eggs collected cannot exceed the number of living birds",
	ErrKeyBatchChange:          "A production record cannot move to another batch",
	ErrKeyConcurrentUpdate:     "The resource was modified by another request, please retry",
	ErrKeyResourceInUse:        "The resource still holds birds",
	ErrKeyOptimizerRejected:    "The feed optimizer could not solve this request",
	ErrKeyOptimizerDown:        "The feed optimizer is unavailable, please retry later",
}

var portuguese = map[string]string{
	ErrKeyInvalidRequest:       "Requisição inválida",
	ErrKeyInvalidRequestBody:   "Corpo da requisição inválido",
	ErrKeyInternalError:        "Ocorreu um erro inesperado",
	ErrKeyUnauthorized:         "Não autorizado",
	ErrKeyInvalidCredentials:   "E-mail ou senha inválidos",
	ErrKeyAPIKeyRequired:       "Chave de API é obrigatória",
	ErrKeyInvalidAPIKey:        "Chave de API inválida",
	ErrKeyForbidden:            "Proibido",
	ErrKeyNotFound:             "Não encontrado",
	ErrKeyRateLimitExceeded:    "Muitas requisições, tente novamente mais tarde",
	ErrKeyConflict:             "Conflito",
	ErrKeyInvalidToken:         "Token inválido ou expirado",
	ErrKeyTokenRequired:        "Token de autenticação é obrigatório",
	ErrKeyUserExists:           "Já existe um usuário com este e-mail",
	ErrKeyRefreshTokenRequired: "O cabeçalho X-Refresh-Token é obrigatório",
	ErrKeyTimeout:              "A requisição demorou demais para ser concluída",
	ErrKeyServiceUnavailable:   "Serviço temporariamente indisponível, tente novamente",
	ErrKeyNoFarm:               "Você não pertence a nenhuma granja",
	ErrKeyFarmExists:           "Você já pertence a uma granja",
	ErrKeyFarmNotFound:         "Granja não encontrada",
	ErrKeyBatchNotFound:        "Lote não encontrado",
	ErrKeyHouseNotFound:        "Galpão não encontrado",
	ErrKeyAllocationNotFound:   "Alocação não encontrada",
	ErrKeyStockNotFound:        "Item de estoque não encontrado",
	ErrKeyProductionNotFound:   "Registro de produção não encontrado",
	ErrKeyFormulaNotFound:      "Fórmula de ração não encontrada",
	ErrKeyInvalidQuantity:      "quantity: deve ser um inteiro positivo",
	ErrKeyInsufficientBirds:    "Aves insuficientes disponíveis",
	ErrKeyCapacityExceeded:     "Capacidade do galpão excedida",
	ErrKeySameHouse:            "Galpão de origem e destino devem ser diferentes",
	ErrKeyCapacityBelowUse:     "A capacidade não pode ser menor que as aves no galpão",
	ErrKeyLossesExceedBatch:    "As perdas não podem exceder a quantidade original do lote",
	ErrKeyEggCountExceeded:     "Os ovos coletados não podem exceder o número de aves vivas",
	ErrKeyBatchChange:          "Um registro de produção não pode mudar de lote",
	ErrKeyConcurrentUpdate:     "O recurso foi alterado por outra requisição, tente novamente",
	ErrKeyResourceInUse:        "O recurso ainda contém aves",
	ErrKeyOptimizerRejected:    "O otimizador de ração não conseguiu resolver esta requisição",
	ErrKeyOptimizerDown:        "O otimizador de ração está indisponível, tente mais tarde",
}

var dutch = map[string]string{
	ErrKeyInvalidRequest:       "Ongeldig verzoek",
	ErrKeyInvalidRequestBody:   "Ongeldige aanvraag body",
	ErrKeyInternalError:        "Er is een onverwachte fout opgetreden",
	ErrKeyUnauthorized:         "Niet geautoriseerd",
	ErrKeyInvalidCredentials:   "Ongeldig e-mailadres of wachtwoord",
	ErrKeyAPIKeyRequired:       "API-sleutel is vereist",
	ErrKeyInvalidAPIKey:        "Ongeldige API-sleutel",
	ErrKeyForbidden:            "Verboden",
	ErrKeyNotFound:             "Niet gevonden",
	ErrKeyRateLimitExceeded:    "Te veel verzoeken, probeer het later opnieuw",
	ErrKeyConflict:             "Conflict",
	ErrKeyInvalidToken:         "Ongeldig of verlopen token",
	ErrKeyTokenRequired:        "Authenticatietoken is vereist",
	ErrKeyUserExists:           "Er bestaat al een gebruiker met dit e-mailadres",
	ErrKeyRefreshTokenRequired: "X-Refresh-Token header is vereist",
	ErrKeyTimeout:              "Het verzoek duurde te lang",
	ErrKeyServiceUnavailable:   "Dienst tijdelijk niet beschikbaar, probeer het opnieuw",
	ErrKeyNoFarm:               "U bent geen lid van een boerderij",
	ErrKeyFarmExists:           "U hoort al bij een boerderij",
	ErrKeyFarmNotFound:         "Boerderij niet gevonden",
	ErrKeyBatchNotFound:        "Koppel niet gevonden",
	ErrKeyHouseNotFound:        "Stal niet gevonden",
	ErrKeyAllocationNotFound:   "Toewijzing niet gevonden",
	ErrKeyStockNotFound:        "Voorraaditem niet gevonden",
	ErrKeyProductionNotFound:   "Productieregistratie niet gevonden",
	ErrKeyFormulaNotFound:      "Voerformule niet gevonden",
	ErrKeyInvalidQuantity:      "quantity: moet een positief geheel getal zijn",
	ErrKeyInsufficientBirds:    "Niet genoeg vogels beschikbaar",
	ErrKeyCapacityExceeded:     "Capaciteit van de stal overschreden",
	ErrKeySameHouse:            "Bron- en doelstal moeten verschillen",
	ErrKeyCapacityBelowUse:     "Capaciteit mag niet lager zijn dan het aantal vogels in de stal",
	ErrKeyLossesExceedBatch:    "Verliezen mogen het oorspronkelijke aantal niet overschrijden",
	ErrKeyEggCountExceeded:     "Verzamelde eieren mogen het aantal levende vogels niet overschrijden",
	ErrKeyBatchChange:          "Een productieregistratie kan niet naar een ander koppel",
	ErrKeyConcurrentUpdate:     "De resource is door een ander verzoek gewijzigd, probeer opnieuw",
	ErrKeyResourceInUse:        "De resource bevat nog vogels",
	ErrKeyOptimizerRejected:    "De voeroptimalisatie kon dit verzoek niet oplossen",
	ErrKeyOptimizerDown:        "De voeroptimalisatie is niet beschikbaar, probeer later opnieuw",
}

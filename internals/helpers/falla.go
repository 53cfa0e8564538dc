package helper

// Falla es un rechazo de negocio con código estable para el cliente.
// Los servicios la devuelven como error y los controladores la vuelcan
// al sobre JSON con JsonFail.
type Falla struct {
	Status  int
	Code    string
	Message string
	Meta    map[string]interface{}
}

func (f *Falla) Error() string { return f.Code + ": " + f.Message }

// NuevaFalla con status 422, el caso común de precondición incumplida.
func NuevaFalla(code, message string, meta map[string]interface{}) *Falla {
	return &Falla{Status: 422, Code: code, Message: message, Meta: meta}
}

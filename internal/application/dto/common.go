package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StatusResponse resultado del sondeo de disponibilidad del gateway remoto.
// Es una señal pasiva para operadores: la forma de los datos que recibe la UI
// es idéntica con remoto disponible o no.
type StatusResponse struct {
	Service string `json:"service"`
	Remote  bool   `json:"remote"`
}

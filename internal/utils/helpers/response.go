package helpers

import (
	"encoding/json"
	"net/http"

	"theinsight/internal/models"
	"theinsight/internal/validation"
)

// Response: единый конверт всех ответов API.
type Response struct {
	Success    bool                    `json:"success"`
	Message    string                  `json:"message,omitempty"`
	Data       any                     `json:"data,omitempty"`
	Errors     []validation.FieldError `json:"errors,omitempty"`
	Pagination *models.Pagination      `json:"pagination,omitempty"`
	Error      string                  `json:"error,omitempty"`
}

func write(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func JSON(w http.ResponseWriter, status int, data any) {
	write(w, status, Response{Success: true, Data: data})
}

func Message(w http.ResponseWriter, status int, msg string, data any) {
	write(w, status, Response{Success: true, Message: msg, Data: data})
}

func Paged(w http.ResponseWriter, data any, p models.Pagination) {
	write(w, http.StatusOK, Response{Success: true, Data: data, Pagination: &p})
}

func Error(w http.ResponseWriter, status int, errMsg string) {
	write(w, status, Response{Success: false, Message: errMsg})
}

// ErrorDetail добавляет техническую подробность; вызывающий решает, можно ли её показывать.
func ErrorDetail(w http.ResponseWriter, status int, errMsg, detail string) {
	write(w, status, Response{Success: false, Message: errMsg, Error: detail})
}

func ValidationErrors(w http.ResponseWriter, fields []validation.FieldError) {
	write(w, http.StatusBadRequest, Response{Success: false, Message: "Validation failed", Errors: fields})
}

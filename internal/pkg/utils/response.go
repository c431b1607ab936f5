package utils

import (
	"bitecare-service/internal/pkg/constvars"
	"bitecare-service/internal/pkg/dto/responses"
	"bitecare-service/internal/pkg/exceptions"
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type errorResponse struct {
	Success    bool                 `json:"success"`
	Message    string               `json:"message"`
	Fields     map[string]string    `json:"fields,omitempty"`
	DevMessage string               `json:"dev_message,omitempty"`
	Location   *exceptions.Location `json:"location,omitempty"`
}

func BuildSuccessResponse(w http.ResponseWriter, code int, message string, data interface{}) {
	response := responses.ResponseDTO{
		Success: true,
		Message: message,
		Data:    data,
	}
	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response)
}

func BuildErrorResponse(log *zap.Logger, w http.ResponseWriter, err error) {
	code := constvars.StatusInternalServerError
	response := errorResponse{
		Success: false,
		Message: constvars.ErrClientSomethingWrongWithApplication,
	}

	customErr, ok := exceptions.As(err)
	if ok {
		code = customErr.StatusCode
		response.Message = customErr.ClientMessage
		response.Fields = customErr.Fields
		log.Error(customErr.DevMessage,
			zap.String("file", customErr.Location.File),
			zap.Int("line", customErr.Location.Line),
			zap.String("function_name", customErr.Location.FunctionName),
		)

		appEnvironment := GetEnvString("APP_ENV", constvars.EnvironmentDevelopment)
		if appEnvironment != constvars.EnvironmentProduction {
			response.DevMessage = customErr.DevMessage
			response.Location = &customErr.Location
		}
	} else {
		log.Error(err.Error())
	}

	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response)
}

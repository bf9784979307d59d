package models

type ServiceResponse[T any] struct {
	Data  *T     `json:"data"`
	Error string `json:"error,omitempty"`
}

func GetServiceResponseOk[T any](data *T) ServiceResponse[T] {
	return ServiceResponse[T]{
		Data: data,
	}
}

func GetServiceResponseError(errorMessage string) ServiceResponse[any] {
	return ServiceResponse[any]{
		Error: errorMessage,
	}
}

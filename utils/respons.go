package utils

import (
	"github.com/gin-gonic/gin"
)

// The front-end expects every success payload wrapped in "data" and every
// failure as {"error": "..."}.

type DataResponse struct {
	Data interface{} `json:"data"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func RespondJSON(c *gin.Context, code int, data interface{}) {
	c.JSON(code, DataResponse{Data: data})
}

func RespondError(c *gin.Context, err error) {
	c.JSON(StatusCode(err), ErrorResponse{Error: err.Error()})
}

package handlers

import (
	"fmt"
	"math"
	"net/http"

	"github.com/labstack/echo/v4"
)

// UtilsHandler hosts small client-convenience endpoints.
type UtilsHandler struct{}

// NewUtilsHandler creates a new UtilsHandler.
func NewUtilsHandler() *UtilsHandler {
	return &UtilsHandler{}
}

// FormatSize handles POST /api/utils/format-size: renders a byte count as a
// human-readable size with two decimals (Bytes, KB, MB, GB).
func (h *UtilsHandler) FormatSize(c echo.Context) error {
	var req FormatSizeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Bytes size required"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Bytes size required"})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"formatted": formatSize(*req.Bytes),
	})
}

func formatSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}

	const k = 1024
	units := []string{"Bytes", "KB", "MB", "GB"}

	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(k)))
	if i < 0 {
		i = 0
	}
	if i > len(units)-1 {
		i = len(units) - 1
	}

	return fmt.Sprintf("%.2f %s", float64(bytes)/math.Pow(k, float64(i)), units[i])
}

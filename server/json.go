package server

import (
	"fmt"
	"net/http"

	j "github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
)

// goJSONSerializer keeps request/response JSON on goccy/go-json, matching the
// codec used by the source parser and generator client.
type goJSONSerializer struct{}

func (goJSONSerializer) Serialize(c echo.Context, i any, indent string) error {
	enc := j.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (goJSONSerializer) Deserialize(c echo.Context, i any) error {
	dec := j.NewDecoder(c.Request().Body)
	if err := dec.Decode(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid json: %v", err)).SetInternal(err)
	}
	return nil
}

package api

import (
	"net/http"

	"github.com/dekarrin/renfa/internal/version"
	"github.com/dekarrin/renfa/server/result"
)

// HTTPGetInfo returns a HandlerFunc that retrieves information on the API and
// server.
func (api API) HTTPGetInfo() http.HandlerFunc {
	return httpEndpoint(api.ErrorDelay, api.epGetInfo)
}

func (api API) epGetInfo(req *http.Request) result.Result {
	var resp InfoModel
	resp.Version.Server = version.ServerCurrent
	resp.Version.Renfa = version.Current

	return result.OK(resp, "got API info")
}

package api

import (
	"errors"
	"net/http"

	"github.com/dekarrin/renfa/internal/export"
	"github.com/dekarrin/renfa/regex"
	"github.com/dekarrin/renfa/server/result"
	"github.com/dekarrin/renfa/server/serr"
)

// DOTContentType is the media type of DOT documents served by the API.
const DOTContentType = "text/vnd.graphviz; charset=utf-8"

// HTTPParse returns a HandlerFunc that compiles an expression and returns its
// NFA without storing it.
func (api API) HTTPParse() http.HandlerFunc {
	return httpEndpoint(api.ErrorDelay, api.epParse)
}

// POST /parse: compile an expression.
func (api API) epParse(req *http.Request) result.Result {
	var parseReq ParseRequest
	err := parseJSON(req, &parseReq)
	if err != nil {
		return badBodyResult(err)
	}

	nfa, err := api.Backend.Compile(parseReq.Regex)
	if err != nil {
		return compileErrorResult(err, parseReq.Regex)
	}

	return result.OK(newNFAModel(nfa), "compiled %q", parseReq.Regex)
}

// HTTPGetAllExpressions returns a HandlerFunc that retrieves all stored
// expressions.
func (api API) HTTPGetAllExpressions() http.HandlerFunc {
	return httpEndpoint(api.ErrorDelay, api.epGetAllExpressions)
}

// GET /nfas: get all stored expressions.
func (api API) epGetAllExpressions(req *http.Request) result.Result {
	all, err := api.Backend.GetAllExpressions(req.Context())
	if err != nil {
		return result.InternalServerError(err.Error())
	}

	resp := make([]ExpressionModel, len(all))
	for i := range all {
		resp[i] = newExpressionModel(all[i])
	}

	return result.OK(resp, "got all expressions")
}

// HTTPCreateExpression returns a HandlerFunc that compiles and stores a new
// named expression.
func (api API) HTTPCreateExpression() http.HandlerFunc {
	return httpEndpoint(api.ErrorDelay, api.epCreateExpression)
}

// POST /nfas: compile and store an expression.
func (api API) epCreateExpression(req *http.Request) result.Result {
	var createReq CreateExpressionRequest
	err := parseJSON(req, &createReq)
	if err != nil {
		return badBodyResult(err)
	}
	if createReq.Name == "" {
		return result.BadRequest("name: property is empty or missing from request", "empty name")
	}

	created, err := api.Backend.CreateExpression(req.Context(), createReq.Name, createReq.Regex)
	if err != nil {
		if errors.Is(err, serr.ErrAlreadyExists) {
			return result.Conflict("Expression with that name already exists", "expression '%s' already exists", createReq.Name)
		} else if errors.Is(err, serr.ErrBadArgument) {
			return result.BadRequest(err.Error(), err.Error())
		}
		return compileErrorResult(err, createReq.Regex)
	}

	return result.Created(newExpressionModel(created), "created expression '%s' (%s)", created.Name, created.ID)
}

// HTTPGetExpression returns a HandlerFunc that retrieves one stored
// expression.
func (api API) HTTPGetExpression() http.HandlerFunc {
	return httpEndpoint(api.ErrorDelay, api.epGetExpression)
}

// GET /nfas/{id}: get a stored expression.
func (api API) epGetExpression(req *http.Request) result.Result {
	id := requireIDParam(req)

	e, err := api.Backend.GetExpression(req.Context(), id.String())
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError(err.Error())
	}

	return result.OK(newExpressionModel(e), "got expression '%s'", e.Name)
}

// HTTPGetExpressionDOT returns a HandlerFunc that retrieves the NFA of one
// stored expression as a Graphviz DOT document.
func (api API) HTTPGetExpressionDOT() http.HandlerFunc {
	return httpEndpoint(api.ErrorDelay, api.epGetExpressionDOT)
}

// GET /nfas/{id}/dot: get the NFA of a stored expression in DOT format.
func (api API) epGetExpressionDOT(req *http.Request) result.Result {
	id := requireIDParam(req)

	e, err := api.Backend.GetExpression(req.Context(), id.String())
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError(err.Error())
	}

	return result.Text(http.StatusOK, export.DOTString(e.NFA), "got DOT of expression '%s'", e.Name).
		WithHeader("Content-Type", DOTContentType)
}

// HTTPDeleteExpression returns a HandlerFunc that deletes one stored
// expression.
func (api API) HTTPDeleteExpression() http.HandlerFunc {
	return httpEndpoint(api.ErrorDelay, api.epDeleteExpression)
}

// DELETE /nfas/{id}: delete a stored expression.
func (api API) epDeleteExpression(req *http.Request) result.Result {
	id := requireIDParam(req)

	e, err := api.Backend.DeleteExpression(req.Context(), id.String())
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError(err.Error())
	}

	return result.NoContent("deleted expression '%s'", e.Name)
}

// compileErrorResult gives the HTTP-400 for a syntax error, or an HTTP-500 if
// err is anything else.
func compileErrorResult(err error, expr string) result.Result {
	var synErr regex.SyntaxError
	if errors.As(err, &synErr) {
		resp := newSyntaxErrorResponse(http.StatusBadRequest, synErr)
		return result.ErrWithBody(http.StatusBadRequest, resp, "compile %q: %s", expr, synErr.Error())
	}
	return result.InternalServerError(err.Error())
}

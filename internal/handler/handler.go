// Package handler exposes the tax engine over HTTP with fasthttp.
package handler

import (
	"errors"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"bonus-tax-engine/internal/engine"
	"bonus-tax-engine/internal/logger"
	"bonus-tax-engine/internal/model"
	"bonus-tax-engine/internal/schemeregistry"
	"bonus-tax-engine/internal/tax"
)

const (
	FuncBonusMin     = "bonus_min"
	FuncTaxResultMin = "tax_result_min"
)

type Handler struct {
	schemes         *schemeregistry.Registry
	defaultSchemeID string
	opts            []tax.Option
}

func New(schemes *schemeregistry.Registry, defaultSchemeID string, opts ...tax.Option) *Handler {
	return &Handler{
		schemes:         schemes,
		defaultSchemeID: defaultSchemeID,
		opts:            opts,
	}
}

// Router returns the request handler for the whole API, wrapped in request logging.
func (h *Handler) Router() fasthttp.RequestHandler {
	return withLogging(func(ctx *fasthttp.RequestCtx) {
		path := string(ctx.Path())
		switch {
		case path == "/calculate":
			h.HandleCalculation(ctx)
		case path == "/functions/"+FuncBonusMin:
			h.HandleFunction(ctx, FuncBonusMin)
		case path == "/functions/"+FuncTaxResultMin:
			h.HandleFunction(ctx, FuncTaxResultMin)
		case path == "/schemes":
			h.HandleSchemeList(ctx)
		case strings.HasPrefix(path, "/schemes/"):
			h.HandleScheme(ctx, strings.TrimPrefix(path, "/schemes/"))
		case path == "/healthz":
			writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
		default:
			writeError(ctx, fasthttp.StatusNotFound, "Not found: "+path)
		}
	})
}

func (h *Handler) HandleCalculation(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req model.CalculationRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if len(req.Calculations) == 0 {
		writeError(ctx, fasthttp.StatusBadRequest, "At least one calculation is required")
		return
	}

	if req.SchemeID == "" {
		req.SchemeID = h.defaultSchemeID
	}
	scheme, ok := h.lookupScheme(ctx, req.SchemeID)
	if !ok {
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, engine.Process(&req, scheme, h.opts...))
}

// HandleFunction serves the single-value spreadsheet functions. Both take
// year_salary and an optional monthly_deduction query parameter.
func (h *Handler) HandleFunction(ctx *fasthttp.RequestCtx, name string) {
	if !ctx.IsGet() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	args := ctx.QueryArgs()
	yearSalary, err := parseAmount(args, "year_salary", true)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	deduction, err := parseAmount(args, "monthly_deduction", false)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	schemeID := string(args.Peek("scheme_id"))
	if schemeID == "" {
		schemeID = h.defaultSchemeID
	}
	scheme, ok := h.lookupScheme(ctx, schemeID)
	if !ok {
		return
	}

	best, err := tax.New(scheme, h.opts...).MinimizeTax(yearSalary, deduction)
	if err != nil {
		logger.FromContext(ctx).Error("minimize tax failed", "scheme_id", schemeID, "error", err)
		writeError(ctx, fasthttp.StatusUnprocessableEntity, err.Error())
		return
	}

	value := best.TotalTax
	if name == FuncBonusMin {
		value = best.AnnualBonus
	}
	writeJSON(ctx, fasthttp.StatusOK, model.FunctionResponse{Function: name, Value: value})
}

func (h *Handler) HandleSchemeList(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusOK, map[string][]string{"schemes": h.schemes.IDs()})
}

func (h *Handler) HandleScheme(ctx *fasthttp.RequestCtx, id string) {
	if scheme, ok := h.lookupScheme(ctx, id); ok {
		writeJSON(ctx, fasthttp.StatusOK, scheme)
	}
}

func (h *Handler) lookupScheme(ctx *fasthttp.RequestCtx, id string) (model.TaxScheme, bool) {
	scheme, err := h.schemes.Get(ctx, id)
	if err != nil {
		status := fasthttp.StatusInternalServerError
		if errors.Is(err, schemeregistry.ErrUnknownScheme) {
			status = fasthttp.StatusNotFound
		}
		writeError(ctx, status, err.Error())
		return model.TaxScheme{}, false
	}
	return scheme, true
}

func parseAmount(args *fasthttp.Args, key string, required bool) (float64, error) {
	raw := string(args.Peek(key))
	if raw == "" {
		if required {
			return 0, errors.New("missing query parameter " + key)
		}
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.New("invalid " + key + ": " + raw)
	}
	if v < 0 {
		return 0, errors.New(key + " must be non-negative")
	}
	return v, nil
}

func withLogging(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()
		next(ctx)
		logger.L.Info("request",
			"method", string(ctx.Method()),
			"path", string(ctx.Path()),
			"status", ctx.Response.StatusCode(),
			"duration", time.Since(start))
	}
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		logger.L.Error("encode response", "error", err)
		ctx.Error("internal error", fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(b)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	writeJSON(ctx, status, model.ErrorResponse{
		Status:  status,
		Message: message,
	})
}

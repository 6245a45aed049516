package nodepop

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrymomot/nodepop/app/nodepop/product"
	"github.com/dmitrymomot/nodepop/core/binder"
	"github.com/dmitrymomot/nodepop/core/handler"
	"github.com/dmitrymomot/nodepop/core/logger"
	"github.com/dmitrymomot/nodepop/core/response"
)

type createProductRequest struct {
	Name  string          `form:"name" json:"name" validate:"required,min=3" sanitize:"text,max:120"`
	Price flexString      `form:"price" json:"price" validate:"required,price" sanitize:"trim"`
	Tags  product.TagList `form:"tags" json:"tags" validate:"tags" sanitize:"trim"`
}

type deleteProductRequest struct {
	ID string `json:"id" validate:"required,objectid"`
}

// GET /
func (a *App) listProducts(ctx *Context) handler.Response {
	var raw product.RawQuery
	if err := binder.Query()(ctx.Request(), &raw); err != nil {
		return response.Error(response.ErrBadRequest.WithError(err))
	}

	listing, err := a.products.List(ctx, ctx.UserID(), raw)
	if err != nil {
		return response.Error(err)
	}

	return a.views.render(pageIndex, indexPage{
		layout:      a.layout(ctx, "My products"),
		Listing:     listing,
		Deleted:     ctx.Request().URL.Query().Get("deleted") == "true",
		AllowedTags: product.AllowedTags,
	}, http.StatusOK)
}

func (a *App) renderNewProduct(ctx *Context, form createProductRequest, fieldErrs map[string]string, status int) handler.Response {
	return a.views.render(pageNew, newProductPage{
		layout:      a.layout(ctx, "New product"),
		Name:        form.Name,
		Price:       string(form.Price),
		Tags:        product.NormalizeTags(form.Tags),
		AllowedTags: product.AllowedTags,
		Errors:      fieldErrs,
	}, status)
}

// GET /products/new
func (a *App) showNewProduct(ctx *Context) handler.Response {
	return a.renderNewProduct(ctx, createProductRequest{}, nil, http.StatusOK)
}

// POST /products
func (a *App) createProduct(ctx *Context) handler.Response {
	var form createProductRequest
	if err := binder.Body()(ctx.Request(), &form); err != nil {
		return response.Error(response.ErrBadRequest.WithError(err))
	}

	if err := a.validateStruct(form, response.LocationBody); err != nil {
		var verr response.ValidationError
		if !errors.As(err, &verr) {
			return response.Error(err)
		}
		if response.PrefersJSON(ctx.Request()) {
			return response.JSONWithStatus(verr, http.StatusBadRequest)
		}
		return a.renderNewProduct(ctx, form, verr.Fields(), http.StatusBadRequest)
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(string(form.Price)), 64)
	if err != nil {
		return response.Error(response.ErrBadRequest.WithError(err))
	}

	p, err := a.products.Create(ctx, ctx.UserID(), product.NewProduct{
		Name:  form.Name,
		Price: price,
		Tags:  form.Tags,
	})
	if err != nil {
		return response.Error(err)
	}

	a.logger.InfoContext(ctx, "product created",
		logger.Component("products"),
		logger.ProductID(p.ID.Hex()),
		logger.UserID(p.Owner),
	)
	return response.RedirectSeeOther("/")
}

// POST /products/delete/{id}
func (a *App) deleteProduct(ctx *Context) handler.Response {
	req := deleteProductRequest{ID: ctx.Param("id")}
	if err := a.validateStruct(req, response.LocationParams); err != nil {
		return response.Error(err)
	}

	if err := a.products.Delete(ctx, ctx.UserID(), req.ID); err != nil {
		if errors.Is(err, product.ErrForbidden) {
			a.logger.WarnContext(ctx, "product delete rejected",
				logger.Component("products"),
				logger.ProductID(req.ID),
				logger.UserID(ctx.UserID()),
			)
		}
		return response.Error(err)
	}

	a.logger.InfoContext(ctx, "product deleted",
		logger.Component("products"),
		logger.ProductID(req.ID),
		logger.UserID(ctx.UserID()),
	)
	return response.RedirectSeeOther("/?deleted=true")
}

package handler

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"currency-converter/internal/apperr"
	"currency-converter/internal/form"
	"currency-converter/internal/model"
	"currency-converter/internal/service"
	"currency-converter/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	SessionCookie = "cc_session"
	sessionIDKey  = "session_id"
)

//go:embed templates/*.html
var templatesFS embed.FS

var formTemplate = template.Must(template.ParseFS(templatesFS, "templates/form.html"))

type formView struct {
	Form    *form.Form
	Fiat    []model.Currency
	Crypto  []model.Currency
	Summary string
}

// FormHandler - серверная версия формы конвертации, состояние лежит в session.Store
type FormHandler struct {
	converter service.Converter
	store     session.Store
	ttl       time.Duration
	logger    *zap.Logger
}

func NewFormHandler(converter service.Converter, store session.Store, ttl time.Duration, logger *zap.Logger) *FormHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FormHandler{
		converter: converter,
		store:     store,
		ttl:       ttl,
		logger:    logger,
	}
}

// Show - GET /
func (h *FormHandler) Show(c *gin.Context) {
	f, ok := h.load(c)
	if !ok {
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Render(http.StatusOK, render.HTML{
		Template: formTemplate,
		Name:     "form.html",
		Data: formView{
			Form:    f,
			Fiat:    model.FiatCurrencies(),
			Crypto:  model.CryptoCurrencies(),
			Summary: f.Summary(),
		},
	})
}

// Convert - POST /convert
func (h *FormHandler) Convert(c *gin.Context) {
	f, ok := h.load(c)
	if !ok {
		return
	}
	// зависшая загрузка из прошлого запроса не должна блокировать форму
	f.Loading = false
	f.SetAmount(c.PostForm("amount"))

	if err := h.selectCurrencies(f, c.PostForm("from"), c.PostForm("to")); err != nil {
		f.Result = nil
		f.Message = apperr.MessageOf(err)
	} else if err := f.Convert(c.Request.Context(), h.converter); err != nil && !apperr.IsInvalidArgument(err) {
		h.logger.Warn("Form conversion failed",
			zap.String("from", f.From),
			zap.String("to", f.To),
			zap.String("kind", string(apperr.KindOf(err))),
			zap.Error(err),
		)
	}
	h.saveAndRedirect(c, f)
}

// Swap - POST /swap
func (h *FormHandler) Swap(c *gin.Context) {
	f, ok := h.load(c)
	if !ok {
		return
	}
	if amount, present := c.GetPostForm("amount"); present {
		f.SetAmount(amount)
	}
	// сначала применяем то, что выбрано в форме сейчас
	if err := h.selectCurrencies(f, c.PostForm("from"), c.PostForm("to")); err != nil {
		f.Result = nil
		f.Message = apperr.MessageOf(err)
	} else {
		f.Swap()
	}
	h.saveAndRedirect(c, f)
}

func (h *FormHandler) selectCurrencies(f *form.Form, from, to string) error {
	if from != "" {
		if err := f.SetFrom(from); err != nil {
			return err
		}
	}
	if to != "" {
		if err := f.SetTo(to); err != nil {
			return err
		}
	}
	return nil
}

// sessionID определяется один раз за запрос и кешируется в контексте
func (h *FormHandler) sessionID(c *gin.Context) string {
	if id := c.GetString(sessionIDKey); id != "" {
		return id
	}
	id, err := c.Cookie(SessionCookie)
	if err == nil {
		_, err = uuid.Parse(id)
	}
	if err != nil {
		id = uuid.NewString()
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, id, int(h.ttl.Seconds()), "/", "", c.Request.TLS != nil, true)
	}
	c.Set(sessionIDKey, id)
	return id
}

func (h *FormHandler) load(c *gin.Context) (*form.Form, bool) {
	f, err := h.store.Load(c.Request.Context(), h.sessionID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return nil, false
	}
	return f, true
}

func (h *FormHandler) saveAndRedirect(c *gin.Context, f *form.Form) {
	if err := h.store.Save(c.Request.Context(), h.sessionID(c), f); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

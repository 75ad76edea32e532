package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/heartmarshall/sapl-backend/internal/domain"
	"github.com/heartmarshall/sapl-backend/internal/i18n"
	"github.com/heartmarshall/sapl-backend/internal/transport/web"
)

type systemRepo interface {
	House(ctx context.Context) (*domain.LegislativeHouse, error)
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, int, error)
}

type authorDirectory interface {
	Directory(ctx context.Context, limit, offset int) ([]domain.ResolvedAuthor, int, error)
}

type appConfigHandle interface {
	Get() domain.AppConfig
}

// AuthorEntry is the JSON shape of one author directory line.
type AuthorEntry struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// SystemHandler serves the /sistema pages that describe the installation.
type SystemHandler struct {
	presenter
	system      systemRepo
	authors     authorDirectory
	appConfig   appConfigHandle
	perPage     int
	mediaURL    string
	defaultLogo string
}

// SystemOptions holds the static settings of a SystemHandler.
type SystemOptions struct {
	PerPage     int
	MediaURL    string
	DefaultLogo string
}

// NewSystemHandler creates a SystemHandler.
func NewSystemHandler(
	system systemRepo,
	authors authorDirectory,
	appConfig appConfigHandle,
	loc *i18n.Localizer,
	opts SystemOptions,
	logger *slog.Logger,
) *SystemHandler {
	return &SystemHandler{
		presenter:   presenter{loc: loc, log: logger.With("handler", "system")},
		system:      system,
		authors:     authors,
		appConfig:   appConfig,
		perPage:     opts.PerPage,
		mediaURL:    opts.MediaURL,
		defaultLogo: opts.DefaultLogo,
	}
}

// pageOf fetches the requested page through fetch, refetching the last page
// when the request points past it.
func pageOf[T any](
	ctx context.Context,
	raw string,
	perPage int,
	fetch func(ctx context.Context, limit, offset int) ([]T, int, error),
) ([]T, web.Page, error) {
	n := parsePageNumber(raw)
	items, total, err := fetch(ctx, perPage, (n-1)*perPage)
	if err != nil {
		return nil, web.Page{}, err
	}
	page := NewPage(n, total, perPage)
	if page.Number != n && total > 0 {
		if items, _, err = fetch(ctx, perPage, (page.Number-1)*perPage); err != nil {
			return nil, web.Page{}, err
		}
	}
	return items, page, nil
}

// Users serves GET /sistema/usuarios.
func (h *SystemHandler) Users(w http.ResponseWriter, r *http.Request) {
	vc, tag := h.view(w, r, i18n.TitleUsers)

	users, page, err := pageOf(r.Context(), r.URL.Query().Get("page"), h.perPage, h.system.ListUsers)
	if err != nil {
		h.fail(w, r, "list users", err)
		return
	}

	vc.ShowResults = true
	vc.Data = users
	vc.Page = &page
	vc.NoEntriesMessage = h.loc.Text(tag, i18n.NoUsers)
	h.render(w, r, vc, usersTable(users))
}

// Authors serves GET /sistema/autores.
func (h *SystemHandler) Authors(w http.ResponseWriter, r *http.Request) {
	vc, tag := h.view(w, r, i18n.TitleAuthors)

	authors, page, err := pageOf(r.Context(), r.URL.Query().Get("page"), h.perPage, h.authors.Directory)
	if err != nil {
		h.fail(w, r, "author directory", err)
		return
	}

	entries := make([]AuthorEntry, 0, len(authors))
	for _, a := range authors {
		entries = append(entries, AuthorEntry{ID: a.Author.ID, Name: a.Subject.DisplayName(), Role: a.Subject.Role()})
	}

	vc.ShowResults = true
	vc.Data = entries
	vc.Page = &page
	vc.NoEntriesMessage = h.loc.Text(tag, i18n.NoAuthors)
	h.render(w, r, vc, authorsTable(authors))
}

// House serves GET /sistema/casa-legislativa.
func (h *SystemHandler) House(w http.ResponseWriter, r *http.Request) {
	vc, _ := h.view(w, r, i18n.TitleHouse)

	house, err := h.system.House(r.Context())
	if err != nil {
		h.fail(w, r, "legislative house", err)
		return
	}

	vc.ShowResults = true
	vc.Data = house
	h.render(w, r, vc, web.Table{
		Headers: []string{"Nome", "Sigla", "Cidade", "UF", "E-mail", "Site"},
		Rows:    [][]string{{house.Name, house.Acronym, house.City, house.State, house.Email, house.WebAddress}},
	})
}

// AppConfig serves GET /sistema/app-config.
func (h *SystemHandler) AppConfig(w http.ResponseWriter, r *http.Request) {
	vc, _ := h.view(w, r, i18n.TitleAppConfig)

	cfg := h.appConfig.Get()
	vc.ShowResults = true
	vc.Data = cfg
	h.render(w, r, vc, web.Table{
		Headers: []string{"Documentos", "Numeração", "Painel aberto"},
		Rows:    [][]string{{string(cfg.DocumentsVisibility), string(cfg.Numbering), strconv.FormatBool(cfg.PanelOpen)}},
	})
}

// Logo serves GET /logotipo: a redirect to the uploaded house logo, or to
// the default logo when there is none.
func (h *SystemHandler) Logo(w http.ResponseWriter, r *http.Request) {
	target := h.defaultLogo

	house, err := h.system.House(r.Context())
	switch {
	case err == nil && house.LogoPath != nil && *house.LogoPath != "":
		target = h.mediaURL + *house.LogoPath
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		h.log.WarnContext(r.Context(), "load house logo", slog.String("error", err.Error()))
	}

	http.Redirect(w, r, target, http.StatusFound)
}

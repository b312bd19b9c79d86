package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/admitcrm/core/student"
)

type studentApi struct {
	svc          *student.Service
	validate     *validator.Validate
	defaultLimit int
}

func registerStudentAPI(g *echo.Group, svc *student.Service, validate *validator.Validate, defaultLimit int) {
	api := studentApi{
		svc:          svc,
		validate:     validate,
		defaultLimit: defaultLimit,
	}

	sg := g.Group("/students")
	sg.GET("", api.query)
	sg.GET("/options", api.queryOptions)

	// detail endpoints
	dg := sg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.POST("/notes", api.addNote)
	dg.POST("/tasks", api.addTask)
	dg.POST("/emails", api.sendEmail)
}

type (
	pageLinks struct {
		Self string `json:"self"`
		Next string `json:"next,omitempty"`
		Prev string `json:"prev,omitempty"`
	}

	directoryResponse struct {
		student.DirectoryPage
		Links pageLinks `json:"links"`
	}

	option struct {
		Value string `json:"value"`
		Color string `json:"color"`
	}

	directoryOptions struct {
		Statuses       []option `json:"statuses"`
		Priorities     []option `json:"priorities"`
		Countries      []string `json:"countries"`
		Grades         []string `json:"grades"`
		Tags           []string `json:"tags"`
		NoteCategories []string `json:"note_categories"`
		SortFields     []string `json:"sort_fields"`
		PageSizes      []int    `json:"page_sizes"`
		Filters        []string `json:"filters"`
	}
)

func directoryLink(q student.DirectoryQuery) string {
	return directoryPath + "?" + q.Values().Encode()
}

func newDirectoryResponse(page student.DirectoryPage) directoryResponse {
	resp := directoryResponse{
		DirectoryPage: page,
		Links:         pageLinks{Self: directoryLink(page.Query)},
	}
	if next, ok := page.NextQuery(); ok {
		resp.Links.Next = directoryLink(next)
	}
	if prev, ok := page.PrevQuery(); ok {
		resp.Links.Prev = directoryLink(prev)
	}
	return resp
}

// Handlers

func (api *studentApi) query(ctx echo.Context) error {
	q, err := student.ParseDirectoryQuery(ctx.QueryParams())
	if err != nil {
		return err
	}
	bindOrdering(ctx, &q)
	q.Clean(api.defaultLimit)
	if err := q.Validate(api.validate); err != nil {
		return err
	}

	page, err := api.svc.Directory(ctx.Request().Context(), q)
	if err != nil {
		return errors.Wrap(err, "querying directory")
	}
	return ctx.JSON(http.StatusOK, newDirectoryResponse(page))
}

func (api *studentApi) queryOptions(ctx echo.Context) error {
	opts := directoryOptions{
		Statuses:       make([]option, 0, len(student.Statuses)),
		Priorities:     make([]option, 0, len(student.Priorities)),
		Countries:      student.Countries,
		Grades:         student.Grades,
		Tags:           student.TagLabels,
		NoteCategories: student.NoteCategories,
		SortFields:     student.SortFields,
		PageSizes:      student.PageSizes,
		Filters:        []string{student.FilterNeedsAttention},
	}
	for _, s := range student.Statuses {
		opts.Statuses = append(opts.Statuses, option{Value: string(s), Color: s.Color()})
	}
	for _, p := range student.Priorities {
		opts.Priorities = append(opts.Priorities, option{Value: string(p), Color: p.Color()})
	}
	return ctx.JSON(http.StatusOK, opts)
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	profile, err := api.svc.Profile(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "loading profile")
	}
	return ctx.JSON(http.StatusOK, profile)
}

func (api *studentApi) addNote(ctx echo.Context) error {
	var data student.NewNote
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewNote")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	note, err := api.svc.AddNote(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "adding note")
	}
	return ctx.JSON(http.StatusAccepted, note)
}

func (api *studentApi) addTask(ctx echo.Context) error {
	var data student.NewTask
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTask")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	task, err := api.svc.AddTask(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "adding task")
	}
	return ctx.JSON(http.StatusAccepted, task)
}

func (api *studentApi) sendEmail(ctx echo.Context) error {
	var data student.NewEmail
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEmail")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	comm, err := api.svc.SendEmail(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "sending email")
	}
	return ctx.JSON(http.StatusAccepted, comm)
}

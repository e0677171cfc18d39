package handlers

import (
	"net/http"

	"github.com/md-rashed-zaman/mockinterview/libs/httpx"
)

type Routes struct {
	Slots      *SlotsHandler
	Interviews *InterviewHandler
	Templates  *TemplateHandler
	// BookingLimit guards interview creation; nil disables it.
	BookingLimit httpx.Middleware
}

func (rt Routes) Register(mux *http.ServeMux) {
	create := http.Handler(httpx.Only(rt.Interviews.Create, http.MethodPost))
	if rt.BookingLimit != nil {
		create = rt.BookingLimit(create)
	}

	mux.Handle("/api/v1/availability/slots", httpx.Only(rt.Slots.List, http.MethodGet))
	mux.HandleFunc("/api/v1/availability/templates", rt.Templates.Collection)
	mux.Handle("/api/v1/interviews", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			rt.Interviews.List(w, r)
			return
		}
		create.ServeHTTP(w, r)
	}))
	mux.Handle("/api/v1/interviews/status", httpx.Only(rt.Interviews.UpdateStatus, http.MethodPatch, http.MethodPost))
}

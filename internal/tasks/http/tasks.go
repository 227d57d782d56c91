package http

import (
	"net/http"

	"github.com/aussiebroadwan/tasks/internal/tasks/service"
	"github.com/aussiebroadwan/tasks/pkg/httpx"
	"github.com/aussiebroadwan/tasks/pkg/tasksdk"
)

type TaskHandler struct {
	TaskService *service.TaskService
}

// HandleCreate creates a task owned by the caller.
//
//	@Summary		Create task
//	@Description	Requires a verified email address.
//	@Tags			Tasks
//	@Security		CookieAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		tasksdk.CreateTaskRequest	true	"Task"
//	@Success		201		{object}	tasksdk.TaskResponse
//	@Failure		400		{object}	tasksdk.MessageResponse	"Invalid input"
//	@Failure		403		{object}	tasksdk.MessageResponse	"Please verify your email address!"
//	@Router			/api/v1/task/create [post]
func (h *TaskHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	var req service.CreateTaskRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	task, err := h.TaskService.Create(r.Context(), id.ID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toTaskResponse(task))
}

// HandleList lists the caller's tasks, newest first.
//
//	@Summary	List tasks
//	@Tags		Tasks
//	@Security	CookieAuth
//	@Produce	json
//	@Success	200	{object}	tasksdk.TaskListResponse
//	@Failure	401	{object}	tasksdk.MessageResponse	"Not authorized"
//	@Router		/api/v1/tasks [get]
func (h *TaskHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	tasks, err := h.TaskService.List(r.Context(), id.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := tasksdk.TaskListResponse{Length: len(tasks), Tasks: make([]tasksdk.TaskResponse, 0, len(tasks))}
	for _, t := range tasks {
		out.Tasks = append(out.Tasks, toTaskResponse(t))
	}
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet returns one of the caller's tasks.
//
//	@Summary	Get task
//	@Tags		Tasks
//	@Security	CookieAuth
//	@Produce	json
//	@Param		id	path		string	true	"Task ID"
//	@Success	200	{object}	tasksdk.TaskResponse
//	@Failure	403	{object}	tasksdk.MessageResponse	"Task belongs to another user"
//	@Failure	404	{object}	tasksdk.MessageResponse	"Task not found!"
//	@Router		/api/v1/task/{id} [get]
func (h *TaskHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	task, err := h.TaskService.Get(r.Context(), id.ID, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTaskResponse(task))
}

// HandleUpdate edits one of the caller's tasks.
//
//	@Summary	Update task
//	@Tags		Tasks
//	@Security	CookieAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Task ID"
//	@Param		request	body		tasksdk.UpdateTaskRequest	true	"Fields to change"
//	@Success	200		{object}	tasksdk.TaskResponse
//	@Failure	400		{object}	tasksdk.MessageResponse	"Invalid input"
//	@Failure	403		{object}	tasksdk.MessageResponse	"Task belongs to another user"
//	@Failure	404		{object}	tasksdk.MessageResponse	"Task not found!"
//	@Router		/api/v1/task/{id} [patch]
func (h *TaskHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	var req service.UpdateTaskRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	task, err := h.TaskService.Update(r.Context(), id.ID, r.PathValue("id"), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTaskResponse(task))
}

// HandleDelete deletes one of the caller's tasks.
//
//	@Summary	Delete task
//	@Tags		Tasks
//	@Security	CookieAuth
//	@Produce	json
//	@Param		id	path		string	true	"Task ID"
//	@Success	200	{object}	tasksdk.MessageResponse
//	@Failure	403	{object}	tasksdk.MessageResponse	"Task belongs to another user"
//	@Failure	404	{object}	tasksdk.MessageResponse	"Task not found!"
//	@Router		/api/v1/task/{id} [delete]
func (h *TaskHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	if err := h.TaskService.Delete(r.Context(), id.ID, r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteMessage(w, http.StatusOK, "Task deleted successfully!")
}

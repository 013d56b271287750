package user

import (
	"html/template"

	"github.com/dentadmin/console/internal/view"
)

var sectionTmpl = view.MustParse("users-section", `<div class="d-flex justify-content-between align-items-center mb-3">
  <h2><i class="fas fa-user-gear me-2"></i>Users</h2>
  <div>
    <button class="btn btn-outline-secondary me-2" data-form-url="/users/change-password"><i class="fas fa-key me-1"></i>Change Password</button>
    <button class="btn btn-primary" data-form-url="/users/form"><i class="fas fa-plus me-1"></i>Add User</button>
  </div>
</div>
<table class="table table-hover" id="users-table">
  <thead><tr><th>Username</th><th>Email</th><th>Status</th><th>Created</th><th>Last Login</th><th>Actions</th></tr></thead>
  <tbody>{{.Rows}}</tbody>
</table>`)

type rowData struct {
	User
	IsSelf bool
}

var rowsTmpl = view.MustParse("users-rows", `{{- range .}}
<tr>
  <td>{{.Username}}{{if .IsSelf}} <span class="badge bg-info text-dark">you</span>{{end}}</td>
  <td>{{.Email}}</td>
  <td>{{if .IsActive}}<span class="badge bg-success">Active</span>{{else}}<span class="badge bg-secondary">Inactive</span>{{end}}</td>
  <td>{{with .CreatedAt}}{{fmtDate .}}{{else}}-{{end}}</td>
  <td>{{with .LastLogin}}{{fmtDateTime .}}{{else}}Never{{end}}</td>
  <td>
    <button class="btn btn-sm btn-outline-primary me-1" data-form-url="/users/{{.ID}}/form"><i class="fas fa-edit"></i></button>
    {{- if not .IsSelf}}
    <button class="btn btn-sm btn-outline-danger" data-confirm-url="/users/{{.ID}}/confirm-delete"><i class="fas fa-trash"></i></button>
    {{- end}}
  </td>
</tr>
{{- end}}`)

// RenderSection renders the whole users section for a collection.
func RenderSection(users []User, currentUserID int64) template.HTML {
	return view.Render(sectionTmpl, struct{ Rows template.HTML }{RenderRows(users, currentUserID)})
}

// RenderRows renders the table body. The signed-in user's own row carries no
// delete control; accounts can never remove themselves from the console.
func RenderRows(users []User, currentUserID int64) template.HTML {
	if len(users) == 0 {
		return `<tr><td colspan="6" class="text-center">No users found</td></tr>`
	}
	rows := make([]rowData, len(users))
	for i, u := range users {
		rows[i] = rowData{User: u, IsSelf: u.ID == currentUserID}
	}
	return view.Render(rowsTmpl, rows)
}

var formTmpl = view.MustParse("user-form", `<form id="userForm" method="post" action="/users/save" data-modal-title="{{if .ID}}Edit User{{else}}Add User{{end}}">
  <input type="hidden" name="id" value="{{if .ID}}{{.ID}}{{end}}">
  <div class="mb-3">
    <label class="form-label" for="user-username">Username *</label>
    <input type="text" class="form-control" id="user-username" name="username" value="{{.Username}}" required>
  </div>
  <div class="mb-3">
    <label class="form-label" for="user-email">Email *</label>
    <input type="email" class="form-control" id="user-email" name="email" value="{{.Email}}" required>
  </div>
  {{- if not .ID}}
  <div class="mb-3">
    <label class="form-label" for="user-password">Password *</label>
    <input type="password" class="form-control" id="user-password" name="password" minlength="6" required>
    <div class="form-text">At least 6 characters.</div>
  </div>
  {{- else}}
  <div class="form-check mb-3">
    <input type="checkbox" class="form-check-input" id="user-active" name="is_active" value="true"{{if .IsActive}} checked{{end}}>
    <label class="form-check-label" for="user-active">Active</label>
  </div>
  {{- end}}
  <button type="submit" class="btn btn-primary">Save User</button>
</form>`)

// RenderForm renders the create/edit form. Creates ask for a password;
// edits expose the active flag instead.
func RenderForm(u *User) template.HTML {
	if u == nil {
		u = &User{}
	}
	return view.Render(formTmpl, u)
}

var passwordTmpl = view.MustParse("user-password-form", `<form id="changePasswordForm" method="post" action="/users/change-password" data-modal-title="Change Password">
  <div class="mb-3">
    <label class="form-label" for="current-password">Current Password *</label>
    <input type="password" class="form-control" id="current-password" name="current_password" required>
  </div>
  <div class="mb-3">
    <label class="form-label" for="new-password">New Password *</label>
    <input type="password" class="form-control" id="new-password" name="new_password" minlength="6" required>
    <div class="form-text">At least 6 characters.</div>
  </div>
  <button type="submit" class="btn btn-primary">Change Password</button>
</form>`)

// RenderPasswordForm renders the signed-in user's password change form.
func RenderPasswordForm() template.HTML {
	return view.Render(passwordTmpl, nil)
}

var confirmTmpl = view.MustParse("user-confirm", `<div class="confirm-dialog" data-modal-title="Delete User">
  <p>Are you sure you want to delete <strong>{{.Username}}</strong>?</p>
  <form method="post" action="/users/{{.ID}}/delete" class="d-inline"><button type="submit" class="btn btn-danger">Delete</button></form>
  <button type="button" class="btn btn-secondary" data-bs-dismiss="modal">Cancel</button>
</div>`)

// RenderDeleteConfirm renders the explicit confirmation step required before
// any DELETE is issued.
func RenderDeleteConfirm(u *User) template.HTML {
	return view.Render(confirmTmpl, u)
}

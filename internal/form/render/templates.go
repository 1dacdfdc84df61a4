package render

import "html/template"

var fieldTemplates = template.Must(template.New("fields").Parse(`
{{- define "label" -}}
<label for="{{.Name}}">{{.Label}}{{if .Required}} <span class="required">*</span>{{end}}</label>
{{- end -}}

{{- define "error" -}}
{{if .Error}}<p class="field-error" id="{{.Name}}-error">{{.Error}}</p>{{end}}
{{- end -}}

{{- define "text" -}}
<div class="field">
{{template "label" .}}
<input type="{{.Type}}" id="{{.Name}}" name="{{.Name}}" value="{{.Value}}"
{{- if .Placeholder}} placeholder="{{.Placeholder}}"{{end}}
{{- if .Required}} required{{end}}>
{{template "error" .}}
</div>
{{- end -}}

{{- define "choice" -}}
<div class="field">
{{template "label" .}}
<select id="{{.Name}}" name="{{.Name}}"{{if .Required}} required{{end}}>
<option value="" disabled{{if eq .Value ""}} selected{{end}}>{{.Placeholder}}</option>
{{- range .Options}}
<option value="{{.Value}}"{{if eq .Value $.Value}} selected{{end}}>{{.Label}}</option>
{{- end}}
</select>
{{template "error" .}}
</div>
{{- end -}}

{{- define "checkbox" -}}
<div class="field declaration">
<label for="{{.Name}}"><input type="checkbox" id="{{.Name}}" name="{{.Name}}" value="true"
{{- if .Checked}} checked{{end}}
{{- if .Required}} required{{end}}> {{.Label}}</label>
{{template "error" .}}
</div>
{{- end -}}
`))

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
</head>
<body>
<header>
<h1>Recruitment</h1>
<p>Join a legacy of excellence. Here you can apply for career opportunities with {{.Company}}.</p>
</header>
<main>
{{- if .Submitted}}
<section class="success">
<h2>Application Received</h2>
<p>Thank you for applying to {{.Company}}. Our recruitment team will review your information and get in touch if your profile matches our requirements.</p>
<form method="post" action="/reset">
<button type="submit">Submit Another Application</button>
</form>
</section>
{{- else}}
{{- if .Notice}}
<div class="notice" role="alertdialog" aria-live="assertive">{{.Notice}}</div>
<script>window.alert({{.Notice}});</script>
{{- end}}
<h2>Job Application Form</h2>
<p>Please provide accurate information for business evaluation and recruitment processing.</p>
<form method="post" action="/submit" novalidate>
{{- range .Sections}}
<fieldset id="{{.ID}}">
<legend>{{.Title}}</legend>
{{- range .Fields}}
{{.}}
{{- end}}
</fieldset>
{{- end}}
<button type="submit"{{if .Submitting}} disabled{{end}}>{{if .Submitting}}Processing Application...{{else}}Submit Application{{end}}</button>
</form>
<script>
document.querySelectorAll("input, select").forEach(function (el) {
  el.addEventListener("change", function (e) {
    var t = e.target;
    fetch("/field", {
      method: "POST",
      headers: {"Content-Type": "application/json"},
      body: JSON.stringify({name: t.name, value: t.type === "checkbox" ? t.checked : t.value})
    });
  });
});
</script>
{{- end}}
</main>
</body>
</html>
`))

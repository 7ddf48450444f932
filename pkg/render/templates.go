package render

import "html/template"

var (
	daylineTemplate = template.Must(template.New("dayline").Parse(`<ul class="index">
{{range .}}<li class="day-{{.Slug}}"><a href="{{.Href}}">{{.Date}} <span class="count">({{.Count}})</span></a></li>
{{end}}</ul>`))

	timelineTemplate = template.Must(template.New("timeline").Parse(`<ul class="timeline index">
{{range .}}<li><h3 class="year"><a href="{{.Href}}">{{.Year}}</a></h3>
<ul class="months">
{{range .Months}}<li id="timeline-index-li-{{.Slug}}"><a href="{{.Href}}">{{.Label}} <span class="count">({{.Count}})</span></a></li>
{{end}}</ul>
</li>
{{end}}</ul>`))

	paginationTemplate = template.Must(template.New("pagination").Parse(`<ul class="pagination">
{{range .}}<li><a href="{{.Href}}">{{.Page}}</a></li>
{{end}}</ul>`))

	dayCounterTemplate = template.Must(template.New("day-counter").Parse(
		`<span class="count" id="day-counter-{{.Slug}}">{{.Count}}</span>`))

	pageTemplate = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<nav class="timeline">
{{if .TimelineScript}}<script src="{{.TimelineScript}}"></script>{{else}}{{.Timeline}}{{end}}
</nav>
<h2 class="month">{{.Label}}</h2>
{{if .DaylineScript}}<script src="{{.DaylineScript}}"></script>{{else}}{{.Dayline}}{{end}}
{{.Pagination}}
{{range .Days}}<section class="day" id="{{.Slug}}">
<h3>{{.Date}}</h3>
{{range .Messages}}<div class="message" id="{{.ID}}">
<span class="user">{{.User}}</span> <time datetime="{{.ISO}}">{{.Time}}</time>
<div class="text">{{.Content}}</div>
</div>
{{end}}</section>
{{end}}</body>
</html>
`))
)

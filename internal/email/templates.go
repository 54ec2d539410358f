package email

import (
	"html/template"
	"strings"
)

// welcomeTemplate - встроенный шаблон приветственного письма
const welcomeTemplate = `
<html>
<body>
	<h2>Karibu, {{.FullName}}!</h2>
	<p>Your Jua Kali Connect account is ready.</p>
	<p>Clients can post jobs and hire skilled artisans; artisans can browse
	open jobs and apply with a bid. Log in to get started.</p>
	<p>— The Jua Kali Connect team</p>
</body>
</html>
`

var welcomeTpl = template.Must(template.New("welcome").Parse(welcomeTemplate))

// RenderWelcome рендерит приветственное письмо
func RenderWelcome(fullName string) (string, error) {
	var sb strings.Builder
	err := welcomeTpl.Execute(&sb, map[string]string{"FullName": fullName})
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}

// @title           Project Management API
// @version         1.0
// @description     REST API для управления проектами и задачами: авторизация по JWT, проекты, задачи, аналитика, загрузка файлов.
// @contact.name    API Support
// @contact.email   support@example.com
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:4000
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
// @description     "Bearer <access token>"

package main

import "github.com/fachrinfl/ts-project-management-api/internal/app"

func main() {
	app.Run()
}

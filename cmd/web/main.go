// @title           ScreenSynced API
// @version         1.0
// @description     API стримингового каталога: аутентификация, профили и закладки (документация Swagger).
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:3333
// @BasePath        /api

package main

import "screensynced_backend/internal/app"

func main() {
	app.Run()
}

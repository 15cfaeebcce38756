package site

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// StaticOrNotFound は未登録パスのフォールバックハンドラーを返します。
// 公開ディレクトリ配下にファイルがあれば配信し、なければ 404 ページを返します。
func StaticOrNotFound(publicDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			cleaned := path.Clean(c.Request.URL.Path)
			if !strings.Contains(cleaned, "..") {
				full := filepath.Join(publicDir, filepath.FromSlash(cleaned))
				if info, err := os.Stat(full); err == nil && !info.IsDir() {
					c.File(full)
					return
				}
			}
		}

		c.Data(http.StatusNotFound, htmlContentType, []byte("Page not found - 404"))
	}
}

package pmadmin

import (
	"fmt"
	"log"
	"net/http"
)

func logHttp(req *http.Request, status int, additional string, params ...any) {
	log.Printf(
		"[PMADMIN] [%d] request from %s to (%s) %s: %s",
		status,
		req.RemoteAddr,
		req.Method,
		req.RequestURI,
		fmt.Sprintf(additional, params...))
}

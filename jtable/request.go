package jtable

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
)

type SortParam struct {
	Field         string `json:"field"`
	SortDirection string `json:"sortDirection"`
}

func (p SortParam) Ascending() bool {
	return !strings.EqualFold(strings.TrimSpace(p.SortDirection), "desc")
}

// ListRequest is a listing request. Page is 1-based; zero values are
// replaced by defaults before reaching the store.
type ListRequest struct {
	Search   string
	Page     int
	PageSize int
	Sorting  []SortParam
}

type loadParams struct {
	PageSize  int         `json:"pageSize"`
	PageIndex int         `json:"pageIndex"`
	Sorting   []SortParam `json:"sorting"`
}

type listBody struct {
	LoadParams loadParams `json:"loadParams"`
	Search     string     `json:"search"`
}

// ParseListRequest reads a listing request. A json body
// {loadParams: {pageSize, pageIndex, sorting: [{field, sortDirection}]}, search}
// is preferred. Otherwise the classic jTable parameters jtStartIndex,
// jtPageSize and jtSorting ("Field ASC") are read from the query or the
// form, together with a search value.
func ParseListRequest(req *http.Request) (ListRequest, error) {
	if isJson(req) {
		return parseJsonListRequest(req)
	}
	return parseFormListRequest(req)
}

func isJson(req *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(req.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

func parseJsonListRequest(req *http.Request) (ListRequest, error) {
	var body listBody
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil && err != io.EOF {
		return ListRequest{}, fmt.Errorf("cannot decode listing request: %w", err)
	}
	return ListRequest{
		Search:   strings.TrimSpace(body.Search),
		Page:     body.LoadParams.PageIndex,
		PageSize: body.LoadParams.PageSize,
		Sorting:  body.LoadParams.Sorting,
	}, nil
}

func parseFormListRequest(req *http.Request) (ListRequest, error) {
	if err := req.ParseForm(); err != nil {
		return ListRequest{}, fmt.Errorf("cannot parse listing request: %w", err)
	}
	result := ListRequest{
		Search: strings.TrimSpace(req.Form.Get("search")),
	}
	if size, err := strconv.Atoi(req.Form.Get("jtPageSize")); err == nil && size > 0 {
		result.PageSize = size
		if start, err := strconv.Atoi(req.Form.Get("jtStartIndex")); err == nil && start > 0 {
			result.Page = start/size + 1
		}
	}
	if sorting := strings.TrimSpace(req.Form.Get("jtSorting")); sorting != "" {
		for _, part := range strings.Split(sorting, ",") {
			fields := strings.Fields(part)
			if len(fields) == 0 {
				continue
			}
			param := SortParam{Field: fields[0], SortDirection: "asc"}
			if len(fields) > 1 {
				param.SortDirection = strings.ToLower(fields[1])
			}
			result.Sorting = append(result.Sorting, param)
		}
	}
	return result, nil
}

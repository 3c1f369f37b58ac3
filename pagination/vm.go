package pagination

import (
	"fmt"
	"strconv"

	"github.com/deltegui/pmadmin/localizer"
)

// pageWindow is how many page numbers are linked on each side of the
// current page.
const pageWindow int = 4

// Link is one control under a listing: a page number or a step to the
// previous or next page.
type Link struct {
	Page    int
	Label   string
	Current bool
}

// ViewModel is the control bar under a server rendered listing.
type ViewModel struct {
	Summary string
	Links   []Link
	Show    bool
}

// shown returns the 1-based positions of the first and last rows of the
// page, both clamped to the total.
func (p Pagination) shown() (int, int) {
	offset := p.Offset()
	if offset >= p.TotalElements {
		return p.TotalElements, p.TotalElements
	}
	last := p.TotalElements
	if p.TotalElements-offset > p.ElementsPerPage {
		last = offset + p.ElementsPerPage
	}
	return offset + 1, last
}

// ToVM builds the control bar for p. Labels and the summary come from loc.
func ToVM(p Pagination, loc localizer.Localizer) ViewModel {
	first, last := p.shown()
	lastPage := p.LastPage()
	vm := ViewModel{
		Summary: fmt.Sprintf(loc.Get("PaginationMessageOfElements"), first, last, p.TotalElements),
		Show:    lastPage > 1,
	}
	if p.CurrentPage > 1 {
		vm.Links = append(vm.Links, Link{Page: p.CurrentPage - 1, Label: loc.Get("PaginationPreviousButton")})
	}
	from := max(p.CurrentPage-pageWindow, 1)
	to := lastPage
	if p.CurrentPage < lastPage-pageWindow {
		to = p.CurrentPage + pageWindow
	}
	for page := from; page <= to; page++ {
		vm.Links = append(vm.Links, Link{Page: page, Label: strconv.Itoa(page), Current: page == p.CurrentPage})
	}
	if p.CurrentPage < lastPage {
		vm.Links = append(vm.Links, Link{Page: p.CurrentPage + 1, Label: loc.Get("PaginationNextButton")})
	}
	return vm
}

package ui

import "github.com/stefanwatt/mini.files/pkg/listing"

func nameFilter(o Options) listing.Filter {
	return listing.NameFilter{ShowHidden: o.ShowHidden}
}

func fuzzyAndHidden(o Options) listing.Filter {
	base := listing.NameFilter{ShowHidden: o.ShowHidden}
	fz := listing.FuzzyFilter{Pattern: o.FuzzyPattern}
	return listing.FilterFunc(func(e listing.Entry) bool {
		return base.IsVisible(e) && fz.IsVisible(e)
	})
}

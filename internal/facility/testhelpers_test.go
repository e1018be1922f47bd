package facility

import "github.com/sells-group/scout-cli/internal/model"

func fac(id int, name, state string, opts ...func(*model.Facility)) model.Facility {
	f := model.Facility{ID: id, FacilityName: name, State: state}
	for _, o := range opts {
		o(&f)
	}
	return f
}

func withCare(types ...string) func(*model.Facility) {
	return func(f *model.Facility) {
		slots := []*string{&f.CareType1, &f.CareType2, &f.CareType3}
		for i, t := range types {
			*slots[i] = t
		}
	}
}

func withPrices(prices ...string) func(*model.Facility) {
	return func(f *model.Facility) {
		types := []*string{&f.RoomType1, &f.RoomType2, &f.RoomType3}
		slots := []*string{&f.RoomType1Price, &f.RoomType2Price, &f.RoomType3Price}
		for i, p := range prices {
			*types[i] = "Room"
			*slots[i] = p
		}
	}
}

func withCity(city, zip string) func(*model.Facility) {
	return func(f *model.Facility) {
		f.City = city
		f.ZipCode = model.FlexString(zip)
	}
}

func withOwner(owner string) func(*model.Facility) {
	return func(f *model.Facility) {
		f.OwnershipGroup = owner
	}
}

func ids(fs []model.Facility) []int {
	out := make([]int, 0, len(fs))
	for _, f := range fs {
		out = append(out, f.ID)
	}
	return out
}

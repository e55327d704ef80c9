package exchange

type Options struct {
	// Boundary pins the multipart boundary. It takes precedence over Seed.
	Boundary string

	// Seed seeds the boundary generator when UseSeed is set, making the
	// generated boundary reproducible.
	Seed    uint64
	UseSeed bool
}

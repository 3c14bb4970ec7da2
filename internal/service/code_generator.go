package service

// CodeGenerator produces short numeric one-time codes for the second
// login factor.
type CodeGenerator interface {
	Generate() (string, error)
}

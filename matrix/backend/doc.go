/*
Package backend provides an abstraction layer to the available linear algebra
kernel implementations, currently:

	- naive (pure Go reference kernels, no optimizations)
	- blas (gonum blas32 level 1/3 kernels, LAPACK-class solvers via gonum/mat)

Future:

	- cuda
	- opencl

Every implementation has identical observable semantics; accelerated ones
additionally report Accelerated() so the matrix layer keeps the device
mirror in sync.
*/
package backend

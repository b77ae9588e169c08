package docsearch

// The catalog mirrors the math libraries the evaluator exposes. The gateway
// has no evaluator runtime to introspect, so names, signatures and one-line
// docs ship as static data.

// Libraries in presentation order.
var libraries = []string{
	"math",
	"cmath",
	"statistics",
	"random",
	"decimal",
	"fractions",
	"numpy",
	"scipy",
	"sympy",
	"mpmath",
}

// docURLTemplates maps a library to its documentation URL template; {name}
// is substituted with the queried function name.
var docURLTemplates = map[string]string{
	"math":       "https://docs.python.org/3/library/math.html#math.{name}",
	"cmath":      "https://docs.python.org/3/library/cmath.html#cmath.{name}",
	"statistics": "https://docs.python.org/3/library/statistics.html#statistics.{name}",
	"random":     "https://docs.python.org/3/library/random.html#random.{name}",
	"decimal":    "https://docs.python.org/3/library/decimal.html#decimal.{name}",
	"fractions":  "https://docs.python.org/3/library/fractions.html#fractions.{name}",
	"numpy":      "https://numpy.org/doc/stable/reference/generated/numpy.{name}.html",
	"scipy":      "https://docs.scipy.org/doc/scipy/reference/generated/scipy.{name}.html",
	"sympy":      "https://docs.sympy.org/latest/search.html?q={name}",
	"mpmath":     "https://mpmath.org/doc/current/search.html?q={name}",
}

// libAliases lets short conventional prefixes match a library.
var libAliases = map[string]string{
	"np": "numpy",
	"sp": "sympy",
}

// humanSearchMap maps natural-language phrases to function names per
// library.
var humanSearchMap = map[string]map[string][]string{
	"square root": {
		"math":   {"sqrt"},
		"cmath":  {"sqrt"},
		"numpy":  {"sqrt"},
		"sympy":  {"sqrt"},
		"mpmath": {"sqrt"},
	},
	"square": {"math": {"pow"}, "numpy": {"square"}, "sympy": {"Pow"}},
	"power":  {"math": {"pow"}, "numpy": {"power"}, "sympy": {"Pow"}},
	"sine":   {"math": {"sin"}, "numpy": {"sin"}, "sympy": {"sin"}, "mpmath": {"sin"}, "cmath": {"sin"}},
	"cosine": {"math": {"cos"}, "numpy": {"cos"}, "sympy": {"cos"}, "mpmath": {"cos"}, "cmath": {"cos"}},
	"tangent": {
		"math": {"tan"}, "numpy": {"tan"}, "sympy": {"tan"}, "mpmath": {"tan"}, "cmath": {"tan"},
	},
	"arc sine":    {"math": {"asin"}, "numpy": {"arcsin"}, "sympy": {"asin"}, "mpmath": {"asin"}, "cmath": {"asin"}},
	"arc cosine":  {"math": {"acos"}, "numpy": {"arccos"}, "sympy": {"acos"}, "mpmath": {"acos"}, "cmath": {"acos"}},
	"arc tangent": {"math": {"atan"}, "numpy": {"arctan"}, "sympy": {"atan"}, "mpmath": {"atan"}, "cmath": {"atan"}},
	"log":         {"math": {"log"}, "numpy": {"log"}, "sympy": {"log"}, "mpmath": {"log"}, "cmath": {"log"}},
	"natural log": {"math": {"log"}, "numpy": {"log"}, "sympy": {"log"}, "mpmath": {"log"}, "cmath": {"log"}},
	"log base 10": {"math": {"log10"}, "numpy": {"log10"}, "sympy": {"log"}, "mpmath": {"log10"}},
	"exponential": {"math": {"exp"}, "numpy": {"exp"}, "sympy": {"exp"}, "mpmath": {"exp"}, "cmath": {"exp"}},
	"absolute":    {"math": {"fabs"}, "numpy": {"abs"}, "sympy": {"Abs"}, "mpmath": {"fabs"}, "cmath": {"fabs"}},
	"factorial":   {"math": {"factorial"}, "sympy": {"factorial"}, "mpmath": {"factorial"}},
	"gamma":       {"math": {"gamma"}, "scipy": {"special.gamma"}, "sympy": {"gamma"}, "mpmath": {"gamma"}},
	"mean":        {"statistics": {"mean"}, "numpy": {"mean"}, "scipy": {"mean"}},
	"median":      {"statistics": {"median"}, "numpy": {"median"}, "scipy": {"median"}},
	"variance":    {"statistics": {"variance"}, "numpy": {"var"}, "scipy": {"var"}},
	"standard deviation": {
		"statistics": {"stdev"}, "numpy": {"std"}, "scipy": {"std"},
	},
	"random number":  {"random": {"random"}, "numpy": {"random"}, "scipy": {"random"}},
	"uniform random": {"random": {"uniform"}, "numpy": {"uniform"}, "scipy": {"uniform"}},
	"normal distribution": {
		"random": {"gauss", "normalvariate"}, "numpy": {"random"}, "scipy": {"stats.norm"},
	},
}

// Function is one catalog entry.
type Function struct {
	Name      string
	Signature string
	Doc       string
}

var functionCatalog = map[string][]Function{
	"math": {
		{"acos", "acos(x, /)", "Return the arc cosine (measured in radians) of x."},
		{"acosh", "acosh(x, /)", "Return the inverse hyperbolic cosine of x."},
		{"asin", "asin(x, /)", "Return the arc sine (measured in radians) of x."},
		{"asinh", "asinh(x, /)", "Return the inverse hyperbolic sine of x."},
		{"atan", "atan(x, /)", "Return the arc tangent (measured in radians) of x."},
		{"atan2", "atan2(y, x, /)", "Return the arc tangent (measured in radians) of y/x."},
		{"atanh", "atanh(x, /)", "Return the inverse hyperbolic tangent of x."},
		{"ceil", "ceil(x, /)", "Return the ceiling of x as an Integral."},
		{"comb", "comb(n, k, /)", "Number of ways to choose k items from n items without repetition and without order."},
		{"copysign", "copysign(x, y, /)", "Return a float with the magnitude (absolute value) of x but the sign of y."},
		{"cos", "cos(x, /)", "Return the cosine of x (measured in radians)."},
		{"cosh", "cosh(x, /)", "Return the hyperbolic cosine of x."},
		{"degrees", "degrees(x, /)", "Convert angle x from radians to degrees."},
		{"dist", "dist(p, q, /)", "Return the Euclidean distance between two points p and q."},
		{"erf", "erf(x, /)", "Error function at x."},
		{"erfc", "erfc(x, /)", "Complementary error function at x."},
		{"exp", "exp(x, /)", "Return e raised to the power of x."},
		{"expm1", "expm1(x, /)", "Return exp(x)-1."},
		{"fabs", "fabs(x, /)", "Return the absolute value of the float x."},
		{"factorial", "factorial(n, /)", "Find n!."},
		{"floor", "floor(x, /)", "Return the floor of x as an Integral."},
		{"fmod", "fmod(x, y, /)", "Return fmod(x, y), according to platform C."},
		{"fsum", "fsum(seq, /)", "Return an accurate floating point sum of values in the iterable seq."},
		{"gamma", "gamma(x, /)", "Gamma function at x."},
		{"gcd", "gcd(*integers)", "Greatest Common Divisor."},
		{"hypot", "hypot(*coordinates)", "Multidimensional Euclidean distance from the origin to a point."},
		{"isclose", "isclose(a, b, *, rel_tol=1e-09, abs_tol=0.0)", "Determine whether two floating point numbers are close in value."},
		{"isfinite", "isfinite(x, /)", "Return True if x is neither an infinity nor a NaN, and False otherwise."},
		{"isinf", "isinf(x, /)", "Return True if x is a positive or negative infinity, and False otherwise."},
		{"isnan", "isnan(x, /)", "Return True if x is a NaN (not a number), and False otherwise."},
		{"isqrt", "isqrt(n, /)", "Return the integer part of the square root of the input."},
		{"lcm", "lcm(*integers)", "Least Common Multiple."},
		{"lgamma", "lgamma(x, /)", "Natural logarithm of absolute value of Gamma function at x."},
		{"log", "log(x, [base=math.e])", "Return the logarithm of x to the given base."},
		{"log10", "log10(x, /)", "Return the base 10 logarithm of x."},
		{"log1p", "log1p(x, /)", "Return the natural logarithm of 1+x (base e)."},
		{"log2", "log2(x, /)", "Return the base 2 logarithm of x."},
		{"perm", "perm(n, k=None, /)", "Number of ways to choose k items from n items without repetition and with order."},
		{"pow", "pow(x, y, /)", "Return x**y (x to the power of y)."},
		{"prod", "prod(iterable, /, *, start=1)", "Calculate the product of all the elements in the input iterable."},
		{"radians", "radians(x, /)", "Convert angle x from degrees to radians."},
		{"remainder", "remainder(x, y, /)", "Difference between x and the closest integer multiple of y."},
		{"sin", "sin(x, /)", "Return the sine of x (measured in radians)."},
		{"sinh", "sinh(x, /)", "Return the hyperbolic sine of x."},
		{"sqrt", "sqrt(x, /)", "Return the square root of x."},
		{"tan", "tan(x, /)", "Return the tangent of x (measured in radians)."},
		{"tanh", "tanh(x, /)", "Return the hyperbolic tangent of x."},
		{"trunc", "trunc(x, /)", "Truncates the Real x to the nearest Integral toward 0."},
	},
	"cmath": {
		{"acos", "acos(z, /)", "Return the arc cosine of z."},
		{"asin", "asin(z, /)", "Return the arc sine of z."},
		{"atan", "atan(z, /)", "Return the arc tangent of z."},
		{"cos", "cos(z, /)", "Return the cosine of z."},
		{"exp", "exp(z, /)", "Return the exponential value e**z."},
		{"isclose", "isclose(a, b, *, rel_tol=1e-09, abs_tol=0.0)", "Determine whether two complex numbers are close in value."},
		{"log", "log(z, [base])", "Return the logarithm of z to the given base."},
		{"log10", "log10(z, /)", "Return the base-10 logarithm of z."},
		{"phase", "phase(z, /)", "Return argument, also known as the phase angle, of a complex."},
		{"polar", "polar(z, /)", "Convert a complex from rectangular coordinates to polar coordinates."},
		{"rect", "rect(r, phi, /)", "Convert from polar coordinates to rectangular coordinates."},
		{"sin", "sin(z, /)", "Return the sine of z."},
		{"sqrt", "sqrt(z, /)", "Return the square root of z."},
		{"tan", "tan(z, /)", "Return the tangent of z."},
	},
	"statistics": {
		{"fmean", "fmean(data, weights=None)", "Convert data to floats and compute the arithmetic mean."},
		{"geometric_mean", "geometric_mean(data)", "Convert data to floats and compute the geometric mean."},
		{"harmonic_mean", "harmonic_mean(data, weights=None)", "Return the harmonic mean of data."},
		{"mean", "mean(data)", "Return the sample arithmetic mean of data."},
		{"median", "median(data)", "Return the median (middle value) of numeric data."},
		{"median_high", "median_high(data)", "Return the high median of data."},
		{"median_low", "median_low(data)", "Return the low median of numeric data."},
		{"mode", "mode(data)", "Return the most common data point from discrete or nominal data."},
		{"pstdev", "pstdev(data, mu=None)", "Return the square root of the population variance."},
		{"pvariance", "pvariance(data, mu=None)", "Return the population variance of data."},
		{"quantiles", "quantiles(data, *, n=4, method='exclusive')", "Divide data into n continuous intervals with equal probability."},
		{"stdev", "stdev(data, xbar=None)", "Return the square root of the sample variance."},
		{"variance", "variance(data, xbar=None)", "Return the sample variance of data."},
	},
	"random": {
		{"betavariate", "betavariate(alpha, beta)", "Beta distribution."},
		{"choice", "choice(seq)", "Choose a random element from a non-empty sequence."},
		{"expovariate", "expovariate(lambd=1.0)", "Exponential distribution."},
		{"gauss", "gauss(mu=0.0, sigma=1.0)", "Gaussian distribution."},
		{"normalvariate", "normalvariate(mu=0.0, sigma=1.0)", "Normal distribution."},
		{"randint", "randint(a, b)", "Return random integer in range [a, b], including both end points."},
		{"random", "random()", "random() -> x in the interval [0, 1)."},
		{"randrange", "randrange(start, stop=None, step=1)", "Choose a random item from range(stop) or range(start, stop[, step])."},
		{"sample", "sample(population, k)", "Chooses k unique random elements from a population sequence."},
		{"seed", "seed(a=None, version=2)", "Initialize internal state from a seed."},
		{"shuffle", "shuffle(x)", "Shuffle list x in place, and return None."},
		{"uniform", "uniform(a, b)", "Get a random number in the range [a, b) or [a, b] depending on rounding."},
	},
	"decimal": {
		{"Decimal", "Decimal(value='0', context=None)", "Construct a new Decimal object."},
		{"getcontext", "getcontext()", "Return this thread's context."},
		{"localcontext", "localcontext(ctx=None, **kwargs)", "Return a context manager for a copy of the supplied context."},
		{"setcontext", "setcontext(context)", "Set this thread's context to context."},
	},
	"fractions": {
		{"Fraction", "Fraction(numerator=0, denominator=None)", "This class implements rational numbers."},
		{"gcd", "gcd(a, b)", "Calculate the Greatest Common Divisor of a and b."},
	},
	"numpy": {
		{"abs", "abs(x, /)", "Calculate the absolute value element-wise."},
		{"arange", "arange([start, ]stop, [step, ]dtype=None)", "Return evenly spaced values within a given interval."},
		{"arccos", "arccos(x, /)", "Trigonometric inverse cosine, element-wise."},
		{"arcsin", "arcsin(x, /)", "Inverse sine, element-wise."},
		{"arctan", "arctan(x, /)", "Trigonometric inverse tangent, element-wise."},
		{"array", "array(object, dtype=None, *, copy=True)", "Create an array."},
		{"cos", "cos(x, /)", "Cosine element-wise."},
		{"cumsum", "cumsum(a, axis=None, dtype=None)", "Return the cumulative sum of the elements along a given axis."},
		{"dot", "dot(a, b, out=None)", "Dot product of two arrays."},
		{"exp", "exp(x, /)", "Calculate the exponential of all elements in the input array."},
		{"eye", "eye(N, M=None, k=0, dtype=float)", "Return a 2-D array with ones on the diagonal and zeros elsewhere."},
		{"linspace", "linspace(start, stop, num=50)", "Return evenly spaced numbers over a specified interval."},
		{"log", "log(x, /)", "Natural logarithm, element-wise."},
		{"log10", "log10(x, /)", "Return the base 10 logarithm of the input array, element-wise."},
		{"max", "max(a, axis=None, out=None)", "Return the maximum of an array or maximum along an axis."},
		{"mean", "mean(a, axis=None, dtype=None)", "Compute the arithmetic mean along the specified axis."},
		{"median", "median(a, axis=None, out=None)", "Compute the median along the specified axis."},
		{"min", "min(a, axis=None, out=None)", "Return the minimum of an array or minimum along an axis."},
		{"ones", "ones(shape, dtype=None, order='C')", "Return a new array of given shape and type, filled with ones."},
		{"power", "power(x1, x2, /)", "First array elements raised to powers from second array, element-wise."},
		{"prod", "prod(a, axis=None, dtype=None)", "Return the product of array elements over a given axis."},
		{"random", "random(size=None)", "Return random floats in the half-open interval [0.0, 1.0)."},
		{"reshape", "reshape(a, newshape, order='C')", "Gives a new shape to an array without changing its data."},
		{"sin", "sin(x, /)", "Trigonometric sine, element-wise."},
		{"sqrt", "sqrt(x, /)", "Return the non-negative square-root of an array, element-wise."},
		{"square", "square(x, /)", "Return the element-wise square of the input."},
		{"std", "std(a, axis=None, dtype=None)", "Compute the standard deviation along the specified axis."},
		{"sum", "sum(a, axis=None, dtype=None)", "Sum of array elements over a given axis."},
		{"tan", "tan(x, /)", "Compute tangent element-wise."},
		{"uniform", "uniform(low=0.0, high=1.0, size=None)", "Draw samples from a uniform distribution."},
		{"var", "var(a, axis=None, dtype=None)", "Compute the variance along the specified axis."},
		{"zeros", "zeros(shape, dtype=float, order='C')", "Return a new array of given shape and type, filled with zeros."},
	},
	"scipy": {
		{"integrate.quad", "integrate.quad(func, a, b)", "Compute a definite integral."},
		{"interpolate.interp1d", "interpolate.interp1d(x, y)", "Interpolate a 1-D function."},
		{"linalg.det", "linalg.det(a)", "Compute the determinant of a matrix."},
		{"linalg.inv", "linalg.inv(a)", "Compute the inverse of a matrix."},
		{"linalg.solve", "linalg.solve(a, b)", "Solves the linear equation set a @ x == b for the unknown x."},
		{"optimize.minimize", "optimize.minimize(fun, x0)", "Minimization of scalar function of one or more variables."},
		{"special.gamma", "special.gamma(z)", "gamma function."},
		{"stats.norm", "stats.norm(loc=0, scale=1)", "A normal continuous random variable."},
		{"stats.ttest_ind", "stats.ttest_ind(a, b)", "Calculate the T-test for the means of two independent samples."},
	},
	"sympy": {
		{"Abs", "Abs(arg)", "Return the absolute value of the argument."},
		{"Integral", "Integral(function, *symbols)", "Represents unevaluated integral."},
		{"Matrix", "Matrix(rows)", "Construct a dense matrix."},
		{"Pow", "Pow(base, exp)", "Defines the expression x**y as 'x raised to a power y'."},
		{"Rational", "Rational(p, q=None)", "Represents rational numbers (p/q) of any size."},
		{"Symbol", "Symbol(name, **assumptions)", "Symbols are identifiers used to represent mathematical symbols."},
		{"cos", "cos(arg)", "The cosine function."},
		{"diff", "diff(f, *symbols, **kwargs)", "Differentiate f with respect to symbols."},
		{"exp", "exp(arg)", "The exponential function, exp(x) = e**x."},
		{"expand", "expand(e, deep=True)", "Expand an expression using methods given as hints."},
		{"factor", "factor(f, *gens, **args)", "Compute the factorization of expression, f, into irreducibles."},
		{"factorial", "factorial(n)", "Implementation of factorial function over nonnegative integers."},
		{"gamma", "gamma(arg)", "The gamma function."},
		{"integrate", "integrate(f, var, ...)", "Compute the integral of f."},
		{"limit", "limit(e, z, z0, dir='+')", "Computes the limit of e(z) at the point z0."},
		{"log", "log(arg, base=None)", "The natural logarithm function."},
		{"simplify", "simplify(expr)", "Simplifies the given expression."},
		{"sin", "sin(arg)", "The sine function."},
		{"solve", "solve(f, *symbols, **flags)", "Algebraically solves equations and systems of equations."},
		{"sqrt", "sqrt(arg, evaluate=None)", "Returns the principal square root."},
		{"symbols", "symbols(names, *, cls=Symbol, **args)", "Transform strings into instances of Symbol class."},
		{"tan", "tan(arg)", "The tangent function."},
	},
	"mpmath": {
		{"cos", "cos(x, **kwargs)", "Computes the cosine of x."},
		{"exp", "exp(x, **kwargs)", "Computes the exponential function of x."},
		{"fabs", "fabs(x)", "Returns the absolute value of x."},
		{"factorial", "factorial(x, **kwargs)", "Computes the factorial of x."},
		{"gamma", "gamma(x, **kwargs)", "Computes the gamma function of x."},
		{"log", "log(x, b=None)", "Computes the base-b logarithm of x."},
		{"log10", "log10(x)", "Computes the base-10 logarithm of x."},
		{"mpf", "mpf(val=0)", "An mpf instance holds a real-valued floating-point number."},
		{"mpmathify", "mpmathify(x, **kwargs)", "Converts x to an mpf or mpc."},
		{"nsum", "nsum(f, *intervals, **options)", "Computes the sum of f(k) over a given interval."},
		{"quad", "quad(f, *points, **kwargs)", "Computes a single, double or triple integral."},
		{"sin", "sin(x, **kwargs)", "Computes the sine of x."},
		{"sqrt", "sqrt(x, **kwargs)", "Computes the square root of x."},
		{"tan", "tan(x, **kwargs)", "Computes the tangent of x."},
	},
}

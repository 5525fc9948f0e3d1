/*
Package assert is the evaluation engine behind the unit assertion functions.

It's kept separate so that the comparison and diagnostic rules can be used and tested without a running test case.
There are a few pieces:
  - [Equal] and [DeepEqual] decide equality, with a [Tolerance] for floating point values.
  - [Check] describes a single assertion, and [Check.Diagnostic] formats the line written when it fails.
  - [Evaluate] writes the diagnostic for a failed [Check], and reports a [FatalError] for the fatal variants.
  - [ExprText] recovers the literal source text of an assertion argument from the caller's source file.
  - [Collector] joins many errors into one, which is handy for reporting a whole run.

Floating point comparison treats two positive infinities as equal, but negative infinities fall through to the tolerance check and compare unequal.
Use [DeepEqual] if negative infinities need to match.
*/
package assert

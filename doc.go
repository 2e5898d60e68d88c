// Package enumclass generates enumeration classes for annotated Go enums.
//
// A defined integer or string type whose doc comment carries @EnumerationClass gets a
// companion struct type with one singleton per constant of the type, registered for the
// lookups of the enumeration package:
//
//	// @EnumerationClass
//	type CardType int
//
//	const (
//		Amex CardType = iota
//		Visa
//		MasterCard
//	)
//
// generates CardTypeEnumeration with CardTypeEnumerations.Amex(), .Visa() and .MasterCard().
// The annotation accepts a class name and a namespace, positionally or by name:
//
//	// @EnumerationClass("Brands", "internal/brands")
//	// @EnumerationClass(class="Brands", namespace="example.com/shop/internal/brands")
//
// Run it with go generate and the enumgen command, or call Process from a build tool.
package enumclass

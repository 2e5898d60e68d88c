package enumeration_test

import (
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pablor21/enumclass/enumeration"
)

type cardType struct {
	enumeration.Enumeration
}

var cardTypes = struct {
	Amex, Visa, MasterCard cardType
}{
	Amex:       cardType{enumeration.New(1, "Amex")},
	Visa:       cardType{enumeration.New(2, "Visa")},
	MasterCard: cardType{enumeration.New(3, "MasterCard")},
}

var cardTypeValues = [...]cardType{cardTypes.Amex, cardTypes.Visa, cardTypes.MasterCard}

func (cardType) Values() []cardType { return slices.Clone(cardTypeValues[:]) }

func (c *cardType) UnmarshalText(text []byte) error {
	v, err := enumeration.FromDisplayName[cardType](string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

type shade struct {
	enumeration.Enumeration
}

var shadeValues = [...]shade{{enumeration.New(1, "Light")}, {enumeration.New(2, "Dark")}}

func (shade) Values() []shade { return slices.Clone(shadeValues[:]) }

type empty struct {
	enumeration.Enumeration
}

func (empty) Values() []empty { return nil }

var _ enumeration.Registry[cardType] = cardType{}

func TestIdentity(t *testing.T) {
	assert.Equal(t, 1, cardTypes.Amex.ID())
	assert.Equal(t, "Amex", cardTypes.Amex.Name())
	assert.Equal(t, "MasterCard", cardTypes.MasterCard.String())
	assert.Equal(t, 2, cardTypes.Visa.HashCode())
}

func TestAll(t *testing.T) {
	all := enumeration.All[cardType]()
	require.Len(t, all, 3)

	for i, v := range all {
		assert.Equal(t, i+1, v.ID())
	}
	assert.Equal(t, []string{"Amex", "Visa", "MasterCard"}, names(all))

	all[0] = cardTypes.Visa
	assert.Equal(t, cardTypes.Amex, enumeration.All[cardType]()[0], "All must return a copy")

	assert.Empty(t, enumeration.All[empty]())
}

func TestFromValue(t *testing.T) {
	v, err := enumeration.FromValue[cardType](2)
	require.NoError(t, err)
	assert.Equal(t, cardTypes.Visa, v)

	n := len(enumeration.All[cardType]())
	for _, id := range []int{0, n + 1, -1, 99} {
		t.Run(fmt.Sprint(id), func(t *testing.T) {
			_, err := enumeration.FromValue[cardType](id)
			require.Error(t, err)
			assert.ErrorIs(t, err, enumeration.ErrNotFound)

			var nf *enumeration.NotFoundError
			require.ErrorAs(t, err, &nf)
			assert.Equal(t, id, nf.Value)
			assert.Equal(t, enumeration.KindValue, nf.Kind)
			assert.Equal(t, fmt.Sprintf("'%d' is not a valid value in enumeration_test.cardType", id), err.Error())

			_, ok := enumeration.TryFromValue[cardType](id)
			assert.False(t, ok)
		})
	}
}

func TestLookupRoundTrip(t *testing.T) {
	for _, v := range enumeration.All[cardType]() {
		byName, err := enumeration.FromDisplayName[cardType](v.Name())
		require.NoError(t, err)
		assert.Equal(t, v, byName)

		byID, err := enumeration.FromValue[cardType](v.ID())
		require.NoError(t, err)
		assert.Equal(t, v, byID)
		assert.True(t, enumeration.Equal(byName, byID))
	}
}

func TestFromDisplayName(t *testing.T) {
	v, err := enumeration.FromDisplayName[cardType]("MasterCard")
	require.NoError(t, err)
	assert.Equal(t, 3, v.ID())

	_, err = enumeration.FromDisplayName[cardType]("mastercard")
	require.ErrorIs(t, err, enumeration.ErrNotFound)
	assert.Contains(t, err.Error(), "'mastercard' is not a valid display name in")

	_, err = enumeration.FromDisplayName[empty]("x")
	assert.ErrorIs(t, err, enumeration.ErrNotFound)
}

func TestTryLookups(t *testing.T) {
	v, ok := enumeration.TryFromValue[cardType](1)
	assert.True(t, ok)
	assert.Equal(t, cardTypes.Amex, v)

	_, ok = enumeration.TryFromValue[cardType](0)
	assert.False(t, ok)

	v, ok = enumeration.TryFromDisplayName[cardType]("Visa")
	assert.True(t, ok)
	assert.Equal(t, cardTypes.Visa, v)

	_, ok = enumeration.TryFromDisplayName[cardType]("")
	assert.False(t, ok)
}

func TestEquality(t *testing.T) {
	visa, err := enumeration.FromDisplayName[cardType]("Visa")
	require.NoError(t, err)

	assert.True(t, enumeration.Equal(visa, cardTypes.Visa))
	assert.True(t, visa == cardTypes.Visa)
	assert.False(t, enumeration.Equal(cardTypes.Amex, cardTypes.Visa))
	assert.Equal(t, visa.HashCode(), cardTypes.Visa.HashCode())

	// Same id, different types.
	assert.False(t, enumeration.Equal(cardTypes.Amex, shadeValues[0]))
	assert.False(t, enumeration.Equal(cardTypes.Amex, nil))
	assert.True(t, enumeration.Equal(nil, nil))
}

func TestOrdering(t *testing.T) {
	assert.Negative(t, enumeration.Compare(cardTypes.Amex, cardTypes.Visa))
	assert.Positive(t, enumeration.Compare(cardTypes.MasterCard, cardTypes.Visa))
	assert.Zero(t, enumeration.Compare(cardTypes.Visa, cardTypes.Visa))
	assert.Negative(t, cardTypes.Amex.CompareTo(cardTypes.MasterCard))

	// Cross-type comparison orders by id.
	assert.Zero(t, enumeration.Compare(cardTypes.Amex, shadeValues[0]))

	shuffled := []cardType{cardTypes.MasterCard, cardTypes.Amex, cardTypes.Visa}
	slices.SortFunc(shuffled, func(a, b cardType) int { return enumeration.Compare(a, b) })
	assert.Equal(t, enumeration.All[cardType](), shuffled)
}

func TestAbsoluteDifference(t *testing.T) {
	assert.Equal(t, 2, enumeration.AbsoluteDifference(cardTypes.Amex, cardTypes.MasterCard))
	assert.Equal(t, 2, enumeration.AbsoluteDifference(cardTypes.MasterCard, cardTypes.Amex))
	assert.Equal(t, 0, enumeration.AbsoluteDifference(cardTypes.Visa, cardTypes.Visa))
	assert.Equal(t, 1, enumeration.AbsoluteDifference(cardTypes.Amex, shadeValues[1]))
}

func TestTextRoundTrip(t *testing.T) {
	type payment struct {
		Card cardType `json:"card"`
	}

	data, err := json.Marshal(payment{Card: cardTypes.Visa})
	require.NoError(t, err)
	assert.JSONEq(t, `{"card":"Visa"}`, string(data))

	var p payment
	require.NoError(t, json.Unmarshal(data, &p))
	assert.Equal(t, cardTypes.Visa, p.Card)

	err = json.Unmarshal([]byte(`{"card":"Discover"}`), &p)
	assert.ErrorIs(t, err, enumeration.ErrNotFound)
}

func TestConcurrentLookups(t *testing.T) {
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := i%3 + 1
			v, err := enumeration.FromValue[cardType](id)
			assert.NoError(t, err)
			assert.Equal(t, id, v.ID())
			assert.Len(t, enumeration.All[cardType](), 3)
		}()
	}
	wg.Wait()
}

func names[T enumeration.Enumerable](values []T) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, v.Name())
	}
	return out
}

package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAsset_UnmarshalKeepsUnknownProperties(t *testing.T) {
	hit := `{
		"assetId": "urn:aaid:aem:1",
		"repo-name": "clip.mp4",
		"dc-format": "video/mp4",
		"repo-size": 2048,
		"tccc-brand": "coke",
		"tccc-campaign": ["summer", "winter"]
	}`

	var a Asset
	require.NoError(t, json.Unmarshal([]byte(hit), &a))

	require.Equal(t, "urn:aaid:aem:1", a.AssetID)
	require.Equal(t, "clip.mp4", a.Name)
	require.Equal(t, "video/mp4", a.Format)
	require.EqualValues(t, 2048, a.Size)
	require.Len(t, a.Extra, 2)

	brand, ok := a.ExtraString("tccc-brand")
	require.True(t, ok)
	require.Equal(t, "coke", brand)

	_, ok = a.ExtraString("tccc-campaign")
	require.False(t, ok, "arrays are not strings")
	_, ok = a.ExtraString("missing")
	require.False(t, ok)
}

func TestAsset_UnmarshalPreservesFetchedRenditions(t *testing.T) {
	a := Asset{Renditions: []Rendition{Original()}}
	require.NoError(t, json.Unmarshal([]byte(`{"assetId":"a2"}`), &a))
	require.Equal(t, "a2", a.AssetID)
	require.Len(t, a.Renditions, 1)
	require.Nil(t, a.Extra)
}

func TestAsset_MarshalMergesExtra(t *testing.T) {
	a := Asset{
		AssetID: "a1",
		Name:    "photo.png",
		Extra:   map[string]json.RawMessage{"tccc-brand": json.RawMessage(`"sprite"`)},
	}
	b, err := json.Marshal(a)
	require.NoError(t, err)

	var back map[string]any
	require.NoError(t, json.Unmarshal(b, &back))
	require.Equal(t, "a1", back["assetId"])
	require.Equal(t, "photo.png", back["repo-name"])
	require.Equal(t, "sprite", back["tccc-brand"])
}

func TestAsset_UnmarshalRejectsWrongTypes(t *testing.T) {
	var a Asset
	require.Error(t, json.Unmarshal([]byte(`{"assetId": 5}`), &a))
}

func TestBlob_DataURL(t *testing.T) {
	b := &Blob{Data: []byte("hi"), ContentType: "image/png; charset=binary"}
	require.Equal(t, "data:image/png;base64,aGk=", b.DataURL())

	b = &Blob{Data: []byte{}}
	require.Equal(t, "data:application/octet-stream;base64,", b.DataURL())
}

func TestDownloadToken_Expired(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)

	var nilToken *DownloadToken
	require.True(t, nilToken.Expired(now))
	require.False(t, (&DownloadToken{Token: "t"}).Expired(now))
	require.False(t, (&DownloadToken{Token: "t", ExpiryTime: now.UnixMilli() + 1}).Expired(now))
	require.True(t, (&DownloadToken{Token: "t", ExpiryTime: now.UnixMilli()}).Expired(now))
}

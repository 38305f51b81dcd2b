package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func rawDoc(t *testing.T, doc bson.M) bson.Raw {
	t.Helper()
	data, err := bson.Marshal(doc)
	require.NoError(t, err)
	return bson.Raw(data)
}

func TestDriverIDFromRaw(t *testing.T) {
	cases := []struct {
		name string
		doc  bson.M
		want string
	}{
		{"canonical", bson.M{"driverId": "DRV-1"}, "DRV-1"},
		{"snake case", bson.M{"driver_id": "DRV-2"}, "DRV-2"},
		{"camel caps", bson.M{"driverID": "DRV-3"}, "DRV-3"},
		{"portuguese", bson.M{"motoristaId": "DRV-4"}, "DRV-4"},
		{"portuguese snake", bson.M{"motorista_id": "DRV-5"}, "DRV-5"},
		{"canonical wins over alias", bson.M{"driverId": "DRV-1", "motoristaId": "DRV-9"}, "DRV-1"},
		{"empty canonical falls through", bson.M{"driverId": "", "driver_id": "DRV-6"}, "DRV-6"},
		{"non-string alias skipped", bson.M{"driverId": 42, "driver_id": "DRV-7"}, "DRV-7"},
		{"missing", bson.M{"name": "Carlos"}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, driverIDFromRaw(rawDoc(t, tc.doc)))
		})
	}
}

func TestNormalizeMopp(t *testing.T) {
	cases := []struct {
		name string
		doc  bson.M
		want string
	}{
		{"canonical yes", bson.M{"hasMopp": "Sim"}, "Sim"},
		{"canonical no", bson.M{"hasMopp": "Não"}, "Não"},
		{"lowercase", bson.M{"hasMopp": "sim"}, "Sim"},
		{"bool true", bson.M{"hasMopp": true}, "Sim"},
		{"bool false", bson.M{"hasMopp": false}, "Não"},
		{"number one", bson.M{"hasMopp": int32(1)}, "Sim"},
		{"number zero", bson.M{"hasMopp": int32(0)}, "Não"},
		{"string one", bson.M{"hasMopp": "1"}, "Sim"},
		{"unknown string", bson.M{"hasMopp": "talvez"}, "Não"},
		{"missing", bson.M{"name": "Carlos"}, "Não"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, normalizeMopp(rawDoc(t, tc.doc)))
		})
	}
}

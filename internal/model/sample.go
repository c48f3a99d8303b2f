package model

// SampleJSON is a small logistics model used for demos and as a quick way to
// try the generator without an Ellie.ai export at hand.
const SampleJSON = `{
    "model": {
      "modelId": 173,
      "name": "Logistics Hub",
      "description": "Sample logistics database",
      "entities": [
        {
          "id": "91f0817a-bde6-11ef-858c-0242ac170004",
          "name": "Customer",
          "metadata": {
            "Description": "Customer information"
          },
          "attributes": [
            {
              "id": "91eff7aa-bde6-11ef-858c-0242ac170004",
              "name": "customer_id",
              "order": 0,
              "metadata": {
                "FK": false,
                "PK": true,
                "Unique": false,
                "Data type": "BIGINT",
                "description": "Unique customer identifier"
              }
            },
            {
              "id": "custom1",
              "name": "customer_name",
              "order": 1,
              "metadata": {
                "FK": false,
                "PK": false,
                "Not null": true,
                "Data type": "VARCHAR",
                "description": "Full customer name"
              }
            }
          ]
        },
        {
          "id": "91f0704a-bde6-11ef-858c-0242ac170004",
          "name": "Order",
          "metadata": {
            "Description": "Order information"
          },
          "attributes": [
            {
              "id": "91effd0e-bde6-11ef-858c-0242ac170004",
              "name": "order_id",
              "order": 0,
              "metadata": {
                "FK": false,
                "PK": true,
                "Not null": true,
                "Data type": "BIGINT",
                "description": "Unique order identifier"
              }
            },
            {
              "id": "91effe58-bde6-11ef-858c-0242ac170004",
              "name": "customer_id",
              "order": 1,
              "metadata": {
                "FK": true,
                "PK": false,
                "Not null": true,
                "Data type": "BIGINT",
                "description": "Reference to customer"
              }
            }
          ]
        }
      ],
      "relationships": [
        {
          "sourceEntity": {
            "id": "91f0817a-bde6-11ef-858c-0242ac170004",
            "name": "Customer",
            "startType": "one",
            "attributeNames": [
              "customer_id"
            ]
          },
          "targetEntity": {
            "id": "91f0704a-bde6-11ef-858c-0242ac170004",
            "name": "Order",
            "endType": "many",
            "attributeNames": [
              "customer_id"
            ]
          }
        }
      ]
    }
}
`

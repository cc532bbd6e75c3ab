package cms

const publishAssetMutation = `mutation Publish($id: ID = "") {
  publishAsset(where: { id: $id }) {
    fileName
  }
}`

const listAssetsQuery = `query Pull($first: Int = 10, $skip: Int = 0) {
  assets(first: $first, skip: $skip) {
    fileName
    id
    url
    altText
    position
    mimeType
  }
}`

const updateAssetMutation = `mutation Update($id: ID = "", $altText: String = "", $position: String = "") {
  updateAsset(
    where: { id: $id }
    data: { altText: $altText, position: $position }
  ) {
    fileName
  }
}`

const updateAssetWithReuploadMutation = `mutation Update($id: ID = "", $altText: String = "", $position: String = "") {
  updateAsset(
    data: { reUpload: true, altText: $altText, position: $position }
    where: { id: $id }
  ) {
    fileName
    upload {
      status
      error {
        code
        message
      }
      requestPostData {
        url
        date
        key
        signature
        algorithm
        policy
        credential
        securityToken
      }
    }
  }
}`
